package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/matt-steen/project-tracker/pkg/store"
	"github.com/stretchr/testify/assert"
)

func getStore(assert *assert.Assertions) (*store.Store, string) {
	tempFile, err := os.CreateTemp("", "test_store*.sqlite")
	assert.Nil(err)

	st, err := store.Open(context.Background(), tempFile.Name())
	assert.NotNil(st)
	assert.Nil(err)

	return st, tempFile.Name()
}

func TestOpenBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	st, err := store.Open(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(st)
	assert.NotNil(err)
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	st, _ := getStore(assert)

	value, ok, err := st.Get(context.Background(), "nope")
	assert.Nil(err)
	assert.False(ok)
	assert.Nil(value)
}

func TestSetGet(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	st, _ := getStore(assert)
	ctx := context.Background()

	assert.Nil(st.Set(ctx, "users", []byte(`[{"id":1}]`)))

	value, ok, err := st.Get(ctx, "users")
	assert.Nil(err)
	assert.True(ok)
	assert.Equal(`[{"id":1}]`, string(value))
}

func TestSetReplaces(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	st, _ := getStore(assert)
	ctx := context.Background()

	assert.Nil(st.Set(ctx, "projects", []byte(`{"projects":[]}`)))
	assert.Nil(st.Set(ctx, "projects", []byte(`{"projects":[{"id":"a"}]}`)))

	value, ok, err := st.Get(ctx, "projects")
	assert.Nil(err)
	assert.True(ok)
	assert.Equal(`{"projects":[{"id":"a"}]}`, string(value))
}

func TestDelete(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	st, _ := getStore(assert)
	ctx := context.Background()

	assert.Nil(st.Set(ctx, "authenticated", []byte("true")))
	assert.Nil(st.Delete(ctx, "authenticated"))

	_, ok, err := st.Get(ctx, "authenticated")
	assert.Nil(err)
	assert.False(ok)

	// deleting a missing record is not an error
	assert.Nil(st.Delete(ctx, "authenticated"))
}

func TestClear(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	st, _ := getStore(assert)
	ctx := context.Background()

	assert.Nil(st.Set(ctx, "users", []byte("[]")))
	assert.Nil(st.Set(ctx, "projects", []byte("{}")))
	assert.Nil(st.Clear(ctx))

	for _, key := range []string{"users", "projects"} {
		_, ok, err := st.Get(ctx, key)
		assert.Nil(err)
		assert.False(ok)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	st, filename := getStore(assert)
	ctx := context.Background()

	assert.Nil(st.Set(ctx, "users", []byte(`[{"id":1}]`)))
	assert.Nil(st.Close())

	st2, err := store.Open(ctx, filename)
	assert.Nil(err)

	value, ok, err := st2.Get(ctx, "users")
	assert.Nil(err)
	assert.True(ok)
	assert.Equal(`[{"id":1}]`, string(value))
}
