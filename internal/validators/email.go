package validators

import (
	"net"
	"regexp"
	"strings"
)

var cpfDigits = regexp.MustCompile(`^\d{11}$`)

// IsEmailDomainValid faz uma checagem barata de DNS do domínio antes de
// aceitar o cadastro.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// IsValidCPF valida só o formato (11 dígitos); dígito verificador fica a
// cargo do cadastro presencial.
func IsValidCPF(cpf string) bool {
	return cpfDigits.MatchString(cpf)
}
