package bf

// frame is a loop whose body is still being collected.
type frame struct {
	body Program
}

// ParseIterative builds the same IR as Parse without recursing, so nesting
// depth is bounded by memory rather than by the goroutine stack. It runs in
// time linear in the length of the source.
func ParseIterative(source string) (Program, error) {
	stack := []frame{{body: Program{}}}

	for _, c := range Lex(source) {
		top := &stack[len(stack)-1]
		switch c {
		case Inc:
			top.body = append(top.body, Increment{Delta: 1})
		case Dec:
			top.body = append(top.body, Increment{Delta: -1})
		case Right:
			top.body = append(top.body, PointerIncrement{Delta: 1})
		case Left:
			top.body = append(top.body, PointerIncrement{Delta: -1})
		case Input:
			top.body = append(top.body, Read{})
		case Output:
			top.body = append(top.body, Write{})
		case LoopStart:
			stack = append(stack, frame{body: Program{}})
		case LoopEnd:
			if len(stack) == 1 {
				// stray ']' outside any loop is commentary
				continue
			}
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.body = append(parent.body, Loop{Body: closed.body})
		}
	}

	if len(stack) != 1 {
		return nil, ErrUnbalancedLoop
	}
	return stack[0].body, nil
}
