package daily

// tips rotate with the calendar date, one per day, shared by all students.
var tips = []string{
	"Read the question before you reread the passage; you will know what to look for.",
	"Underline the words you do not know, then guess their meaning from the sentence around them.",
	"The main idea is usually what every paragraph keeps coming back to.",
	"When two choices look right, reread the exact sentence they point at.",
	"A title should fit the whole text, not just its first line.",
	"Slow down on the last question; that is where rushed mistakes hide.",
	"After reading, retell the text to yourself in one sentence.",
	"Connect what you read to something you have seen; it will stick longer.",
	"Look for signal words like however and because; they carry the author's logic.",
	"Wrong answers teach more than right ones when you read the explanation.",
}

// Tip returns the tip assigned to today's date.
func (s *Service) Tip() string {
	return tips[DateHash(s.Today())%len(tips)]
}
