package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("company not found")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindBadRequest, KindOf(BadRequest("owner cannot be removed")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("no session")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("not a manager")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("assign manager: %w", Conflict("already a manager"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, errors.Is(err, Conflict("")))
	assert.False(t, errors.Is(err, NotFound("")))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(NotFound("x")))
	assert.Equal(t, http.StatusConflict, Status(Conflict("x")))
	assert.Equal(t, http.StatusBadRequest, Status(BadRequest("x")))
	assert.Equal(t, http.StatusUnauthorized, Status(Unauthorized("x")))
	assert.Equal(t, http.StatusForbidden, Status(Forbidden("x")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("x")))
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: KindNotFound, Msg: "user not found", Err: errors.New("no documents")}
	assert.Equal(t, "user not found: no documents", e.Error())
	assert.Equal(t, "not_found", e.Kind.String())
}
