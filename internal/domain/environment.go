package domain

// ============================================================
// Environment
// ============================================================

const (
	// ProductionBaseURL is the production API root.
	ProductionBaseURL = "https://enter.tochka.com/uapi/"
	// SandboxBaseURL is the sandbox API root.
	SandboxBaseURL = "https://enter.tochka.com/sandbox/v2/"
	// SandboxToken is the fixed bearer token accepted by the sandbox.
	SandboxToken = "sandbox.jwt.token"
)

// Environment selects which API deployment requests go to.
type Environment int

const (
	Sandbox Environment = iota
	Production
)

// ParseEnvironment maps PRODUCTION and SANDBOX; anything else is Sandbox.
func ParseEnvironment(s string) Environment {
	switch s {
	case "PRODUCTION":
		return Production
	case "SANDBOX":
		return Sandbox
	default:
		return Sandbox
	}
}

func (e Environment) String() string {
	if e == Production {
		return "PRODUCTION"
	}
	return "SANDBOX"
}

// BaseURL returns the API root of the environment.
func (e Environment) BaseURL() string {
	if e == Production {
		return ProductionBaseURL
	}
	return SandboxBaseURL
}
