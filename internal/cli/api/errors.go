package api

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

var (
	// ErrAuthentication — логин отклонён бэкендом или не удалось выполнить запрос логина.
	ErrAuthentication = errors.New("authentication failed")
	// ErrUnauthorized — токен отклонён при обращении к защищённому эндпоинту.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNetwork — транспортная ошибка или некорректный ответ сервера.
	ErrNetwork = errors.New("network error")

	// ErrLoginTaken is returned by Register when the username is already in use.
	ErrLoginTaken = errors.New("login already in use")
	// ErrInsufficientFunds is returned by PlaySlot when the bet exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient cyber tokens")
	// ErrInvalidBet is returned by PlaySlot for a rejected bet amount.
	ErrInvalidBet = errors.New("invalid bet amount")
)

// StatusError describes a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server status %d", e.Code)
	}
	return fmt.Sprintf("server status %d: %s", e.Code, e.Body)
}

// Describe converts an API error into a short user-facing message.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	// сервер ответил: текст тела не должен приниматься за транспортную ошибку
	var se *StatusError
	transport := !errors.As(err, &se)
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "session expired or token rejected, please login again"
	case transport && isTimeoutError(err):
		return "connection timeout: the server took too long to respond"
	case transport && isDNSError(err):
		return "cannot resolve server address"
	case transport && isConnectionRefusedError(err):
		return "connection refused: the server is not accepting connections"
	case transport && isSSLError(err):
		return "secure connection failed"
	case isServerError(err):
		return "the server encountered an internal error, try again later"
	case errors.Is(err, ErrAuthentication):
		return "invalid username or password"
	}
	return err.Error()
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") || strings.Contains(s, "x509") || strings.Contains(s, "certificate")
}

func isServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 500
}
