package validator

// Config controls validation behavior.
type Config struct {
	RequiredElements []string
}

// DefaultConfig returns the rule set applied to every generated page.
func DefaultConfig() Config {
	return Config{
		RequiredElements: []string{"title", "header", "main", "footer"},
	}
}
