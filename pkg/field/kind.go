package field

// Kind is the type-specific half of a Config. The set of implementations is
// closed; callers dispatch with a type switch over the concrete structs.
type Kind interface {
	Type() Type
	kind()
}

// Text is a single-line plain text input.
type Text struct{}

// URL is a single-line input holding an absolute URL.
type URL struct{}

// Email is a single-line input holding an email address.
type Email struct{}

// Textarea is a multi-line input.
type Textarea struct {
	Rows int
}

// Number is a numeric input. Nil bounds are unset. A fractional Step switches
// sanitisation to decimal parsing.
type Number struct {
	Min  *float64
	Max  *float64
	Step *float64
}

// Select is a dropdown over a resolved option list.
type Select struct {
	Options OptionsSource
}

// Checkbox is a boolean toggle stored as "1" or "0".
type Checkbox struct{}

// AmountType is a dropdown choosing how an amount is interpreted. It falls
// back to DefaultAmountTypes when no options are declared.
type AmountType struct {
	Options OptionsSource
}

func (Text) Type() Type       { return TypeText }
func (URL) Type() Type        { return TypeURL }
func (Email) Type() Type      { return TypeEmail }
func (Textarea) Type() Type   { return TypeTextarea }
func (Number) Type() Type     { return TypeNumber }
func (Select) Type() Type     { return TypeSelect }
func (Checkbox) Type() Type   { return TypeCheckbox }
func (AmountType) Type() Type { return TypeAmountType }

func (Text) kind()       {}
func (URL) kind()        {}
func (Email) kind()      {}
func (Textarea) kind()   {}
func (Number) kind()     {}
func (Select) kind()     {}
func (Checkbox) kind()   {}
func (AmountType) kind() {}

// DefaultAmountTypes lists the built-in amount interpretations.
var DefaultAmountTypes = Static{
	{Value: "fixed", Label: "Fixed amount"},
	{Value: "percentage", Label: "Percentage"},
}

// IsDecimal reports whether the step has a non-zero fractional part.
func (n Number) IsDecimal() bool {
	if n.Step == nil {
		return false
	}
	step := *n.Step
	return step != float64(int64(step))
}

// ResolveOptions returns the option list for select-like kinds, invoking any
// provider. Other kinds return nil.
func ResolveOptions(k Kind) []Option {
	switch typed := k.(type) {
	case Select:
		return resolve(typed.Options)
	case AmountType:
		if typed.Options == nil {
			return DefaultAmountTypes.Resolve()
		}
		return resolve(typed.Options)
	default:
		return nil
	}
}

func resolve(src OptionsSource) []Option {
	if src == nil {
		return nil
	}
	return src.Resolve()
}

func newKind(t Type, raw Raw) Kind {
	switch t {
	case TypeTextarea:
		rows := raw.Rows
		if rows <= 0 {
			rows = DefaultRows
		}
		return Textarea{Rows: rows}
	case TypeNumber:
		return Number{Min: cloneFloat(raw.Min), Max: cloneFloat(raw.Max), Step: cloneFloat(raw.Step)}
	case TypeSelect:
		return Select{Options: raw.Options}
	case TypeAmountType:
		return AmountType{Options: raw.Options}
	case TypeCheckbox:
		return Checkbox{}
	case TypeURL:
		return URL{}
	case TypeEmail:
		return Email{}
	default:
		return Text{}
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Float is a convenience for declaring numeric bounds inline.
func Float(v float64) *float64 {
	return &v
}
