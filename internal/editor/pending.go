package editor

// Operator identifies a pending operator command.
type Operator uint8

const (
	// OpNone means no operator is pending.
	OpNone Operator = iota

	// OpDelete removes text (d).
	OpDelete

	// OpChange removes text and enters insert mode (c).
	OpChange

	// OpYank copies text (y).
	OpYank

	// OpIndent shifts text right (>).
	OpIndent

	// OpOutdent shifts text left (<).
	OpOutdent

	// OpFormat reindents text (=).
	OpFormat

	// OpUpper uppercases text (gU).
	OpUpper

	// OpLower lowercases text (gu).
	OpLower

	// OpToggleCase toggles case (g~).
	OpToggleCase

	// OpReflow rewraps text at the text width (gq).
	OpReflow
)

// String returns the operator's key notation.
func (o Operator) String() string {
	switch o {
	case OpDelete:
		return "d"
	case OpChange:
		return "c"
	case OpYank:
		return "y"
	case OpIndent:
		return ">"
	case OpOutdent:
		return "<"
	case OpFormat:
		return "="
	case OpUpper:
		return "gU"
	case OpLower:
		return "gu"
	case OpToggleCase:
		return "g~"
	case OpReflow:
		return "gq"
	default:
		return ""
	}
}

// Key returns the repeat key that makes the operator linewise (the second
// d of dd, the second U of gUU).
func (o Operator) Key() rune {
	switch o {
	case OpDelete:
		return 'd'
	case OpChange:
		return 'c'
	case OpYank:
		return 'y'
	case OpIndent:
		return '>'
	case OpOutdent:
		return '<'
	case OpFormat:
		return '='
	case OpUpper:
		return 'U'
	case OpLower:
		return 'u'
	case OpToggleCase:
		return '~'
	case OpReflow:
		return 'q'
	default:
		return 0
	}
}

// ChangesText reports whether the operator mutates the buffer.
func (o Operator) ChangesText() bool {
	return o != OpNone && o != OpYank
}

// Modifier is the text-object selector that follows an operator.
type Modifier uint8

const (
	// ModifierNone means no text-object prefix is pending.
	ModifierNone Modifier = iota

	// ModifierInner selects inside the object (i).
	ModifierInner

	// ModifierAround selects the object and its delimiters (a).
	ModifierAround
)

// String returns a human-readable modifier name.
func (m Modifier) String() string {
	switch m {
	case ModifierInner:
		return "inner"
	case ModifierAround:
		return "around"
	default:
		return "none"
	}
}

// Await identifies a single-character argument the state machine is
// waiting for.
type Await uint8

const (
	// AwaitNone means nothing is pending.
	AwaitNone Await = iota

	// AwaitFindChar waits for the target of f, F, t, or T.
	AwaitFindChar

	// AwaitMarkSet waits for the mark name after m.
	AwaitMarkSet

	// AwaitMarkGoto waits for the mark name after ' or `.
	AwaitMarkGoto

	// AwaitRegister waits for the register name after ".
	AwaitRegister

	// AwaitReplaceChar waits for the replacement character after r.
	AwaitReplaceChar

	// AwaitRecordRegister waits for the register name after q.
	AwaitRecordRegister

	// AwaitPlayRegister waits for the register name after @.
	AwaitPlayRegister

	// AwaitTextObject waits for the object key after i or a.
	AwaitTextObject
)

// Pending is the structured pending-command state: the operator, its
// prefixes, and any single-character argument the next token must supply.
// Representing this as a tagged value rather than concatenated key
// strings keeps the state machine free of string re-parsing.
type Pending struct {
	// Operator is the pending operator, or OpNone.
	Operator Operator

	// GPrefix is set after a bare g, before its second key arrives.
	GPrefix bool

	// Modifier is the inner/around selector once i or a has been seen.
	Modifier Modifier

	// Await is the single-character argument being waited for.
	Await Await

	// FindKey is the f/F/t/T key when Await is AwaitFindChar, and the
	// goto key (' or `) when Await is AwaitMarkGoto.
	FindKey rune

	// Register is the register selected with " for the next operation.
	Register rune

	// Count holds count digits typed after the operator; it multiplies
	// with the count typed before it.
	Count string
}

// Active reports whether any pending state exists.
func (p Pending) Active() bool {
	return p.Operator != OpNone || p.GPrefix || p.Modifier != ModifierNone ||
		p.Await != AwaitNone || p.Register != 0 || p.Count != ""
}

// Reset clears all pending state.
func (p *Pending) Reset() {
	*p = Pending{}
}
