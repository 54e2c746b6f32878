package wire

import "strconv"

// Command represents a single SSDB request: a verb plus its arguments in
// wire order. Commands are immutable once built and consumed by Encode.
type Command struct {
	Verb Verb
	Args [][]byte
}

// NewCommand builds a command from a raw argument list, verb first.
// This is the escape hatch for verbs without a typed constructor.
// An empty list yields a command with no verb; the session refuses to
// send those.
func NewCommand(args ...[]byte) *Command {
	if len(args) == 0 {
		return &Command{}
	}
	return &Command{Verb: Verb(args[0]), Args: args[1:]}
}

func NewAuthCommand(password string) *Command {
	return &Command{Verb: VerbAuth, Args: [][]byte{[]byte(password)}}
}

func NewSetCommand(key string, value []byte) *Command {
	return &Command{Verb: VerbSet, Args: [][]byte{[]byte(key), value}}
}

func NewGetCommand(key string) *Command {
	return &Command{Verb: VerbGet, Args: [][]byte{[]byte(key)}}
}

func NewDelCommand(key string) *Command {
	return &Command{Verb: VerbDel, Args: [][]byte{[]byte(key)}}
}

func NewHSetCommand(name, key string, value []byte) *Command {
	return &Command{Verb: VerbHSet, Args: [][]byte{[]byte(name), []byte(key), value}}
}

func NewHGetCommand(name, key string) *Command {
	return &Command{Verb: VerbHGet, Args: [][]byte{[]byte(name), []byte(key)}}
}

func NewHDelCommand(name, key string) *Command {
	return &Command{Verb: VerbHDel, Args: [][]byte{[]byte(name), []byte(key)}}
}

func NewIncrCommand(key string, delta int64) *Command {
	return &Command{Verb: VerbIncr, Args: [][]byte{[]byte(key), strconv.AppendInt(nil, delta, 10)}}
}

func NewInfoCommand() *Command {
	return &Command{Verb: VerbInfo}
}

// Encode serializes the command to wire format: the verb and each argument
// framed as a length-prefixed block, then the bare newline terminator.
// Encoding is total; every argument byte sequence is representable.
func (c *Command) Encode() []byte {
	// verb block + arg blocks: worst case per block is 20 digits + 2 newlines
	size := 1
	size += len(c.Verb) + 22
	for _, arg := range c.Args {
		size += len(arg) + 22
	}

	buf := make([]byte, 0, size)
	buf = appendBlock(buf, []byte(c.Verb))
	for _, arg := range c.Args {
		buf = appendBlock(buf, arg)
	}
	return append(buf, '\n')
}

// EncodeArgs frames a raw argument list (verb first) to wire format,
// applying the same per-block rule as Encode.
func EncodeArgs(args ...[]byte) []byte {
	return NewCommand(args...).Encode()
}

func appendBlock(buf, block []byte) []byte {
	buf = strconv.AppendInt(buf, int64(len(block)), 10)
	buf = append(buf, '\n')
	buf = append(buf, block...)
	return append(buf, '\n')
}
