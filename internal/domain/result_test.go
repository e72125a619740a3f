package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionResult_Succeeded(t *testing.T) {
	res := Succeeded([]CommentRecord{{Author: "a", Body: "b", Score: 1}})

	assert.True(t, res.OK())
	assert.False(t, res.Empty())
	assert.Nil(t, res.Diagnostic())
	assert.Len(t, res.Comments(), 1)
}

func TestExtractionResult_SucceededNilIsEmpty(t *testing.T) {
	res := Succeeded(nil)

	assert.True(t, res.OK())
	assert.True(t, res.Empty())
	assert.NotNil(t, res.Comments())
}

func TestExtractionResult_Failed(t *testing.T) {
	res := Failed(NewDiagnostic(KindTransport, "dial %s", "tcp"))

	assert.False(t, res.OK())
	assert.False(t, res.Empty())
	assert.Nil(t, res.Comments())
	assert.Equal(t, KindTransport, res.Diagnostic().Kind)
	assert.Equal(t, "transport: dial tcp", res.Diagnostic().String())
}

func TestExtractionResult_FailedNilDiagnostic(t *testing.T) {
	res := Failed(nil)

	assert.False(t, res.OK())
	assert.NotNil(t, res.Diagnostic())
}
