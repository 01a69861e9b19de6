package history

// tableTips are short strategies shown above a table's breakdown.
var tableTips = map[int][]string{
	1:  {"Anything times 1 stays the same.", "One group of a number is just that number."},
	2:  {"Double it: add the number to itself.", "Answers are always even: they end in 0, 2, 4, 6 or 8."},
	3:  {"Skip-count: 3, 6, 9, 12, 15...", "Clap on every third number to feel the rhythm."},
	4:  {"Double, then double again.", "Skip-count by 4s: 4, 8, 12, 16..."},
	5:  {"Answers end in 0 or 5.", "Two 5s make 10, so count by 5s: 5, 10, 15, 20..."},
	6:  {"6 × n is 5 × n plus one more n.", "6 is 2 × 3: triple the number, then double it."},
	7:  {"5, 6, 7, 8: 56 = 7 × 8.", "Split it: 7 × n = 5 × n + 2 × n."},
	8:  {"Double three times.", "8 × 9 = 72 is just 8 less than 8 × 10."},
	9:  {"The digits of the answer add up to 9 (9 × 4 = 36, 3 + 6 = 9).", "9 × n = 10 × n minus n."},
	10: {"Put a zero on the end: 10 × 7 = 70.", "Skip-count by 10s: 10, 20, 30..."},
	11: {"Up to 9, repeat the digit: 11 × 4 = 44.", "11 × 12 = 110 + 22 = 132."},
	12: {"12 × n = 10 × n + 2 × n.", "Use the 3s and the 4s: 12 × n = 3 × (4 × n)."},
}

// Tips returns the strategies for table.
func Tips(table int) []string {
	if tips, ok := tableTips[table]; ok {
		return tips
	}
	return []string{"Look for patterns and build on facts you already know."}
}
