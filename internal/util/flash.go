package util

import (
	"encoding/gob"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash severities shown by the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessage is a transient status message carried across one redirect.
type FlashMessage struct {
	Level string
	Text  string
}

func init() {
	// cookie session store gob-encodes flash values
	gob.Register(FlashMessage{})
}

// Flash queues a message for the next rendered page.
func Flash(c *gin.Context, level, text string) {
	s := sessions.Default(c)
	s.AddFlash(FlashMessage{Level: level, Text: text})
	if err := s.Save(); err != nil {
		log.Printf("save flash: %v", err)
	}
}

// TakeFlashes drains and returns all queued messages.
func TakeFlashes(c *gin.Context) []FlashMessage {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		if err := s.Save(); err != nil {
			log.Printf("clear flashes: %v", err)
		}
	}

	msgs := make([]FlashMessage, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(FlashMessage); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
