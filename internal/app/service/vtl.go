package service

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidAccount = errors.New("expected Username#Tag or a puuid")

const vtlBase = "https://vtl.lol/id/"

// VTLURL: "Name#Tag" -> .../Name_Tag, un puuid -> .../<puuid>.
func VTLURL(account string) (string, error) {
	account = strings.TrimSpace(account)
	if len(account) == 36 {
		if id, err := uuid.Parse(account); err == nil {
			return vtlBase + id.String(), nil
		}
	}
	name, tag, ok := strings.Cut(account, "#")
	if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(tag) == "" {
		return "", ErrInvalidAccount
	}
	return vtlBase + url.PathEscape(name+"_"+tag), nil
}
