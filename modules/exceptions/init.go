package exceptions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/raven-go"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("exceptions")

type ExceptionsModule struct {
	ErrorService *raven.Client `inject:""`
}

// Boot builds the module. An empty dsn keeps reports local.
func Boot(dsn string) (*ExceptionsModule, error) {
	client, err := raven.NewClient(dsn, nil)
	if err != nil {
		return nil, err
	}
	return &ExceptionsModule{ErrorService: client}, nil
}

// Recover must be deferred. It reports a panic and lets the caller go on.
func (di *ExceptionsModule) Recover() {
	if rval := recover(); rval != nil {
		di.Report(rval, nil)
	}
}

// Report sends a recovered value to sentry.
func (di *ExceptionsModule) Report(rval interface{}, tags map[string]string) {
	var packet *raven.Packet
	switch rval := rval.(type) {
	case nil:
		return
	case error:
		packet = raven.NewPacket(rval.Error(), raven.NewException(rval, raven.NewStacktrace(2, 3, nil)))
	default:
		rvalStr := fmt.Sprint(rval)
		packet = raven.NewPacket(rvalStr, raven.NewException(errors.New(rvalStr), raven.NewStacktrace(2, 3, nil)))
	}

	log.Errorf("recovered: %v", rval)
	if di == nil || di.ErrorService == nil {
		return
	}
	if tags == nil {
		tags = map[string]string{}
	}
	// Grab the error and send it to sentry
	di.ErrorService.Capture(packet, tags)
}

// Middleware turns handler panics into a 500 reply.
func (di *ExceptionsModule) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rval := recover()
			if rval == nil {
				return
			}
			di.Report(rval, map[string]string{
				"method": c.Request.Method,
				"path":   c.FullPath(),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Internal server error.",
			})
		}()
		c.Next()
	}
}
