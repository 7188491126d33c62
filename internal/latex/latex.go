// Package latex turns the LaTeX emitted by SymPy's latex() printer into
// plain Unicode that a terminal can show.
//
// Only the subset that appears in quadratization results is understood:
// fractions, roots, scripts, delimiters, Greek letters, partial
// derivatives and a handful of operators. Anything else degrades to its
// command name, so output is always readable even when it is not pretty.
package latex

import (
	"strings"
	"unicode"
)

// Placeholder is shown in place of an empty expression.
const Placeholder = "No LaTeX provided."

// blockIndent prefixes display-mode expressions.
const blockIndent = "  "

// Render converts src to Unicode. Inline expressions are returned bare;
// block expressions are indented so they stand apart from running text.
func Render(src string, inline bool) string {
	if strings.TrimSpace(src) == "" {
		return Placeholder
	}
	out := ToUnicode(src)
	if inline {
		return out
	}
	return blockIndent + out
}

// ToUnicode converts src without any placeholder or indentation.
func ToUnicode(src string) string {
	p := &parser{src: []rune(src)}
	return tidy(p.sequence(eof))
}

const eof rune = -1

type parser struct {
	src []rune
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.done() {
		return eof
	}
	return p.src[p.pos]
}

func (p *parser) skipSpaces() {
	for !p.done() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// sequence renders runes until end (consumed) or the end of input.
func (p *parser) sequence(end rune) string {
	var b strings.Builder
	for !p.done() {
		r := p.src[p.pos]
		if r == end {
			p.pos++
			return b.String()
		}
		switch r {
		case '{':
			p.pos++
			b.WriteString(p.sequence('}'))
		case '}':
			// unbalanced close brace
			p.pos++
		case '^', '_':
			p.pos++
			b.WriteString(script(p.argument(), r == '^'))
		case '\\':
			b.WriteString(p.command())
		case '~', '&':
			p.pos++
			b.WriteByte(' ')
		default:
			p.pos++
			b.WriteRune(r)
		}
	}
	return b.String()
}

// argument renders one macro argument: a braced group, a command, or a
// single rune.
func (p *parser) argument() string {
	p.skipSpaces()
	switch r := p.peek(); r {
	case eof:
		return ""
	case '{':
		p.pos++
		return p.sequence('}')
	case '\\':
		return p.command()
	default:
		p.pos++
		return string(r)
	}
}

// command renders the control sequence starting at the backslash.
func (p *parser) command() string {
	p.pos++
	if p.done() {
		return ""
	}

	if r := p.src[p.pos]; !isLetter(r) {
		p.pos++
		switch r {
		case ',', ':', ';', ' ':
			return " "
		case '!':
			return ""
		case '\\':
			return " "
		case '|':
			return "‖"
		default:
			return string(r)
		}
	}

	start := p.pos
	for !p.done() && isLetter(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[start:p.pos])
	p.skipSpaces()

	switch name {
	case "frac", "dfrac", "tfrac":
		num := p.argument()
		den := p.argument()
		return group(num) + "/" + group(den)
	case "sqrt":
		var index string
		if p.peek() == '[' {
			p.pos++
			index = p.sequence(']')
		}
		root := "√"
		if index != "" {
			root = script(index, true) + root
		}
		return root + group(p.argument())
	case "left", "right", "bigl", "bigr", "Bigl", "Bigr", "big", "Big", "bigg", "Bigg":
		return p.delimiter()
	case "operatorname", "mathrm", "text", "textrm", "mathit", "mathbf",
		"mathsf", "mathtt", "mathcal", "textit", "textbf", "boldsymbol", "mathbb":
		return p.argument()
	case "displaystyle", "textstyle", "limits", "nolimits":
		return ""
	case "quad":
		return "  "
	case "qquad":
		return "    "
	}

	if s, ok := operators[name]; ok {
		return " " + s + " "
	}
	if s, ok := symbols[name]; ok {
		return s
	}
	// unknown words and functions keep their name; "\sin x" must not fuse into "sinx"
	if r := p.peek(); isLetter(r) || unicode.IsDigit(r) {
		return name + " "
	}
	return name
}

// delimiter renders what follows \left, \right and the \big family.
func (p *parser) delimiter() string {
	switch r := p.peek(); r {
	case eof:
		return ""
	case '.':
		p.pos++
		return ""
	case '\\':
		return p.command()
	default:
		p.pos++
		return string(r)
	}
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// group parenthesizes s when it has an operator outside any brackets.
func group(s string) string {
	s = tidy(s)
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ' ', '+', '-', '*', '/', '=', '·', '×', ',', '±':
			if depth == 0 {
				return "(" + s + ")"
			}
		}
	}
	return s
}

// script renders a super- or subscript, using Unicode script forms when
// every rune has one.
func script(s string, sup bool) string {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return ""
	}
	table := subscripts
	marker := "_"
	if sup {
		table = superscripts
		marker = "^"
	}

	var b strings.Builder
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			if len([]rune(s)) == 1 {
				return marker + s
			}
			return marker + "(" + s + ")"
		}
		b.WriteRune(m)
	}
	return b.String()
}

// tidy collapses whitespace and drops padding just inside brackets and
// before commas.
func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for _, pair := range [][2]string{
		{"( ", "("}, {" )", ")"},
		{"[ ", "["}, {" ]", "]"},
		{"{ ", "{"}, {" }", "}"},
		{" ,", ","},
	} {
		for strings.Contains(s, pair[0]) {
			s = strings.ReplaceAll(s, pair[0], pair[1])
		}
	}
	return s
}
