package node

import "errors"

var (
	errHost    = errors.New("missing host")
	errPort    = errors.New("port must be 1-65535")
	errBracket = errors.New("IPv6 hosts must be bracketed")
)
