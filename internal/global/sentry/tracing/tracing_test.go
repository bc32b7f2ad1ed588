package tracing

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeURL(t *testing.T) {
	assert.Equal(t, "https://api.mail.test/v1/send", sanitizeURL("https://api.mail.test/v1/send?key=secret"))
	assert.Equal(t, "unknown", sanitizeURL(""))
}

func TestPipelineDescription(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "PIPELINE (empty)", pipelineDescription(nil))

	cmds := []redis.Cmder{
		redis.NewStatusCmd(ctx, "set"),
		redis.NewStringCmd(ctx, "get"),
		redis.NewIntCmd(ctx, "del"),
		redis.NewIntCmd(ctx, "incr"),
	}
	assert.Equal(t, "PIPELINE: SET", pipelineDescription(cmds[:1]))
	assert.Equal(t, "PIPELINE: SET, GET, DEL...", pipelineDescription(cmds))
}

func TestStartSpanWithoutParent(t *testing.T) {
	assert.Nil(t, StartSpanFromContext(context.Background(), "op", "desc"))
}
