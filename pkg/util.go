package pkg

import (
	"fmt"
	"log"
	"os"
	"regexp"
)

// InitLog sends the standard logger to dest, appending, with every line prefixed
func InitLog(dest, prefix string) error {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
	return nil
}

var nickRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// Nickname strips a user supplied name down to something safe to show and to pass on a
// command line
func Nickname(nick string) string {
	nick = nickRegexp.ReplaceAllString(nick, "")
	if len(nick) > 24 {
		nick = nick[:24]
	}
	return nick
}
