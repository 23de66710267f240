package home

// MascotVariant selects the hero owl's pose on the home screen.
type MascotVariant int

const (
	MascotIdle MascotVariant = iota
	MascotCelebrating
	MascotStreak
)

const mascotIdleArt = `   ╭─────────╮
   │  ◉   ◉  │
   │    ﬤ    │
   │  ╰───╯  │
   ╰─┬─────┬─╯
     │ ▤▤▤ │
     ╰─────╯`

const mascotCelebratingArt = `  ✦╭─────────╮✦
   │  ★   ★  │
   │    ﬤ    │
   │  ╰◡──╯  │
   ╰─┬─────┬─╯
     │ ▤▤▤ │
     ╰─────╯`

const mascotStreakArt = `   ╭─────────╮
 ★ │  ◉   ◉  │ ★
   │    ﬤ    │
   │  ╰───╯  │
   ╰─┬─────┬─╯
     │ ▤▤▤ │
     ╰─────╯`

// Art returns the ASCII art for the variant.
func (v MascotVariant) Art() string {
	switch v {
	case MascotCelebrating:
		return mascotCelebratingArt
	case MascotStreak:
		return mascotStreakArt
	default:
		return mascotIdleArt
	}
}
