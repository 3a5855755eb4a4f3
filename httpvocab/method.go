package httpvocab

// Method is an HTTP request method token.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	DELETE Method = "DELETE"
)

var allMethods = [...]Method{GET, POST, PUT, DELETE}

// Methods returns every named method.
func Methods() []Method {
	out := make([]Method, len(allMethods))
	copy(out, allMethods[:])
	return out
}

// ParseMethod matches s exactly; tokens are case-sensitive.
func ParseMethod(s string) (Method, bool) {
	m := Method(s)
	if !m.Valid() {
		return "", false
	}
	return m, true
}

// Valid reports whether m is one of the named methods.
func (m Method) Valid() bool {
	switch m {
	case GET, POST, PUT, DELETE:
		return true
	}
	return false
}

func (m Method) String() string { return string(m) }
