package ast

// Accessibility is the declared visibility of a type or member.
type Accessibility uint8

const (
	// AccessUnspecified means no accessibility keyword was written.
	AccessUnspecified Accessibility = iota
	AccessPriv
	AccessProtected
	AccessInternal
	AccessPub
)

func (a Accessibility) String() string {
	switch a {
	case AccessPriv:
		return "priv"
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	case AccessPub:
		return "pub"
	}
	return ""
}

// NarrowerThan reports whether a is strictly narrower than b.
// Unspecified accessibilities never compare as narrower.
func (a Accessibility) NarrowerThan(b Accessibility) bool {
	if a == AccessUnspecified || b == AccessUnspecified {
		return false
	}
	return a < b
}
