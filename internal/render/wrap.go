package render

import "strings"

// 空白区切りで詰められるだけ詰める。最後の行は必ず出す。
// 1語だけで幅を超える場合はその語だけの行になる。
func wrapWords(text string, maxWidth float64, width func(string) float64) []string {
	words := strings.Split(text, " ")

	lines := make([]string, 0, 1)
	line := ""
	for i, w := range words {
		if i == 0 {
			line = w
			continue
		}
		candidate := line + " " + w
		if line != "" && width(candidate) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
