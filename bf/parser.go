package bf

import (
	"fmt"
)

// FindClose returns the index of the ']' matching the '[' at openIndex.
// Indices count runes, not bytes. The second result is false when the
// source ends before the loop is closed.
//
// Calling FindClose on anything other than a '[' is a programming error and
// panics.
func FindClose(source string, openIndex int) (int, bool) {
	return findClose([]rune(source), openIndex)
}

func findClose(chars []rune, openIndex int) (int, bool) {
	if openIndex < 0 || openIndex >= len(chars) || Classify(chars[openIndex]) != LoopStart {
		panic(fmt.Sprintf("bf: no '[' at index %d", openIndex))
	}

	depth := 0
	for j := openIndex; j < len(chars); j++ {
		switch Classify(chars[j]) {
		case LoopStart:
			depth++
		case LoopEnd:
			depth--
		}
		if depth == 0 {
			return j, true
		}
	}
	return -1, false
}

// Parse builds the IR for the whole source.
func Parse(source string) (Program, error) {
	chars := []rune(source)
	return parseBetween(chars, 0, len(chars))
}

// ParseBetween builds the IR for the runes in [start, end). The range must
// satisfy 0 <= start <= end <= rune count of source; anything else panics.
func ParseBetween(source string, start, end int) (Program, error) {
	return parseBetween([]rune(source), start, end)
}

// MustParse is like Parse but panics on unbalanced loops.
func MustParse(source string) Program {
	program, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return program
}

func parseBetween(chars []rune, start, end int) (Program, error) {
	if start < 0 || start > end || end > len(chars) {
		panic(fmt.Sprintf("bf: invalid range [%d, %d) over %d runes", start, end, len(chars)))
	}

	instructions := Program{}
	for index := start; index < end; index++ {
		switch Classify(chars[index]) {
		case Inc:
			instructions = append(instructions, Increment{Delta: 1})
		case Dec:
			instructions = append(instructions, Increment{Delta: -1})
		case Right:
			instructions = append(instructions, PointerIncrement{Delta: 1})
		case Left:
			instructions = append(instructions, PointerIncrement{Delta: -1})
		case Input:
			instructions = append(instructions, Read{})
		case Output:
			instructions = append(instructions, Write{})
		case LoopStart:
			closeIndex, ok := findClose(chars, index)
			if !ok {
				return nil, ErrUnbalancedLoop
			}
			body, err := parseBetween(chars, index+1, closeIndex)
			if err != nil {
				return nil, err
			}
			instructions = append(instructions, Loop{Body: body})
			// the loop below steps past the ']'
			index = closeIndex
		default:
			// commentary, and stray ']'
		}
	}
	return instructions, nil
}
