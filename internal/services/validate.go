package services

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// hostLabelRegex одна метка имени хоста по `RFC 1123`. Имя может состоять из одной метки (intranet, localhost).
var hostLabelRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

// ValidateURL проверяет, что ссылку можно сокращать: http(s) и непустой корректный хост
// (имя из меток или IP адрес, включая IPv6 в скобках). Все ошибки оборачивают ErrInvalidInput.
func ValidateURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, errors.Wrap(ErrInvalidInput, "URL is empty")
	}

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInput, "invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.Wrap(ErrInvalidInput, "URL must have http or https scheme")
	}

	host := parsedURL.Hostname()
	if host == "" {
		return nil, errors.Wrap(ErrInvalidInput, "URL must have a host")
	}

	if !isValidHost(host) {
		return nil, errors.Wrapf(ErrInvalidInput, "invalid hostname %q", host)
	}

	return parsedURL, nil
}

func isValidHost(host string) bool {
	if net.ParseIP(host) != nil {
		return true
	}
	// полностью квалифицированное имя с точкой в конце.
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if !hostLabelRegex.MatchString(label) {
			return false
		}
	}
	return true
}
