package backend

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atomicstack/portal-keepalive/internal/logging"
	"github.com/google/uuid"
)

// Operation names understood by the backend executable.
const (
	OpLogin  = "login"
	OpPing   = "ping"
	OpLogout = "logout"
)

// Request is one backend invocation: an ordered argument list whose first
// element names the operation. ID correlates traces and async results.
type Request struct {
	ID   string
	Args []string
}

// NewRequest builds a request with a fresh ID.
func NewRequest(args ...string) Request {
	return Request{ID: uuid.NewString(), Args: append([]string(nil), args...)}
}

func LoginRequest(username, password string) Request {
	return NewRequest(OpLogin, username, password)
}

func PingRequest(username, token string) Request {
	return NewRequest(OpPing, username, token)
}

func LogoutRequest(username, token string) Request {
	return NewRequest(OpLogout, username, token)
}

// Op returns the operation name, or "" for an empty request.
func (r Request) Op() string {
	if len(r.Args) == 0 {
		return ""
	}
	return r.Args[0]
}

// Validate rejects arguments that would break line framing.
func (r Request) Validate() error {
	if len(r.Args) == 0 {
		return fmt.Errorf("%w: empty request", ErrInvalidArgument)
	}
	for i, arg := range r.Args {
		if strings.ContainsAny(arg, "\r\n") {
			return fmt.Errorf("%w: argument %d contains a line break", ErrInvalidArgument, i)
		}
	}
	return nil
}

// Encode writes the argument count followed by one argument per line.
func (r Request) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strconv.Itoa(len(r.Args)) + "\n"); err != nil {
		return err
	}
	for _, arg := range r.Args {
		if _, err := bw.WriteString(arg + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Bytes returns the encoded request.
func (r Request) Bytes() []byte {
	var buf bytes.Buffer
	_ = r.Encode(&buf)
	return buf.Bytes()
}

// Redacted returns the arguments with credentials and tokens masked. Only
// the operation name and username survive.
func (r Request) Redacted() []string {
	out := make([]string, len(r.Args))
	for i, arg := range r.Args {
		if i < 2 {
			out[i] = arg
			continue
		}
		out[i] = logging.Redact(arg)
	}
	return out
}

// DecodeRequest reads a framed request as the backend would.
func DecodeRequest(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	header, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	count, err := strconv.Atoi(header)
	if err != nil {
		return nil, fmt.Errorf("parse count %q: %w", header, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative count %d", count)
	}
	args := make([]string, 0, count)
	for i := 0; i < count; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("read argument %d: %w", i, err)
		}
		args = append(args, line)
	}
	return args, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}
