package webclient

// Config is the minimal configuration required for constructing a WebClient.
type Config struct {
	// MaxBodyBytes caps how much of a response body is read. Zero means the
	// default of 10 MiB.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 10 << 20
