package cart

import (
	"github.com/gin-gonic/contrib/sessions"
)

// SessionBucket keeps the encoded cart inside the visitor's session.
type SessionBucket struct {
	Session sessions.Session
	Key     string
}

func (gcs SessionBucket) key() string {
	if gcs.Key == "" {
		return DefaultSlot
	}
	return gcs.Key
}

func (gcs SessionBucket) Restore() (string, error) {
	data := gcs.Session.Get(gcs.key())
	if data == nil {
		return "", nil
	}

	encoded, ok := data.(string)
	if !ok {
		return "", nil
	}
	return encoded, nil
}

func (gcs SessionBucket) Save(data string) error {
	gcs.Session.Set(gcs.key(), data)
	return gcs.Session.Save()
}
