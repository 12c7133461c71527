package storage

// Option configures Put.
type Option func(*putOptions)

type putOptions struct {
	key         string
	prefix      string
	contentType string
}

// WithKey stores the file under key as is, ignoring name and prefix.
func WithKey(key string) Option {
	return func(o *putOptions) {
		o.key = key
	}
}

// WithPrefix groups the file under prefix, typically a conversion run id.
func WithPrefix(prefix string) Option {
	return func(o *putOptions) {
		o.prefix = prefix
	}
}

// WithContentType overrides the type derived from the file name.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// resolve applies opts and returns the key and content type for name.
func resolve(name string, opts []Option) (key, contentType string, err error) {
	o := &putOptions{}
	for _, opt := range opts {
		opt(o)
	}

	key = o.key
	if key == "" {
		key, err = buildKey(o.prefix, name)
		if err != nil {
			return "", "", err
		}
	}
	if !validKey(key) {
		return "", "", ErrInvalidKey
	}

	contentType = o.contentType
	if contentType == "" {
		contentType = ContentType(name)
	}
	return key, contentType, nil
}
