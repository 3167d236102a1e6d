package bf

type Command rune

const (
	Inc       Command = '+'
	Dec       Command = '-'
	Left      Command = '<'
	Right     Command = '>'
	Output    Command = '.'
	Input     Command = ','
	LoopStart Command = '['
	LoopEnd   Command = ']'
	Ignore    Command = ' '
)

// Classify maps a single source character to the command it denotes.
// Anything outside the eight-symbol alphabet is commentary.
func Classify(c rune) Command {
	switch c {
	case '+':
		return Inc
	case '-':
		return Dec
	case '>':
		return Right
	case '<':
		return Left
	case '.':
		return Output
	case ',':
		return Input
	case '[':
		return LoopStart
	case ']':
		return LoopEnd
	default:
		return Ignore
	}
}

func (c Command) String() string {
	if Classify(rune(c)) == Ignore {
		return " "
	}
	return string(rune(c))
}

type Lexer struct {
	chars string
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		chars: input,
	}
}

// Lex drops commentary and returns the symbol stream
func (l *Lexer) Lex() []Command {
	commands := []Command{}
	for _, c := range l.chars {
		cmd := Classify(c)
		if cmd != Ignore {
			commands = append(commands, cmd)
		}
	}
	return commands
}

func Lex(input string) []Command {
	lexer := NewLexer(input)
	return lexer.Lex()
}
