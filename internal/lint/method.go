package lint

// Method is the closed set of console methods the rule polices. Anything
// outside the set falls into MethodOther and is ignored.
type Method int

const (
	MethodOther Method = iota
	MethodError
	MethodWarn
	MethodInfo
)

func ParseMethod(name string) Method {
	switch name {
	case "error":
		return MethodError
	case "warn":
		return MethodWarn
	case "info":
		return MethodInfo
	default:
		return MethodOther
	}
}

func (m Method) String() string {
	switch m {
	case MethodError:
		return "error"
	case MethodWarn:
		return "warn"
	case MethodInfo:
		return "info"
	default:
		return "other"
	}
}
