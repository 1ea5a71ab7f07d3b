package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {

	t.Run("InvokesLoaderOnFirstCall", func(t *testing.T) {

		c := New()

		loaderCalls := 0

		// act
		value, err := c.Get(context.Background(), "github:pipesight/pipesight-api:tags", time.Minute, func(ctx context.Context) (interface{}, error) {
			loaderCalls++
			return []string{"v1.0.0"}, nil
		})

		assert.Nil(t, err)
		assert.Equal(t, []string{"v1.0.0"}, value)
		assert.Equal(t, 1, loaderCalls)
	})

	t.Run("ReturnsCachedValueWithinTtlWithoutInvokingLoader", func(t *testing.T) {

		c := New()

		loaderCalls := 0
		loader := func(ctx context.Context) (interface{}, error) {
			loaderCalls++
			return loaderCalls, nil
		}

		_, _ = c.Get(context.Background(), "key", time.Minute, loader)

		// act
		value, err := c.Get(context.Background(), "key", time.Minute, loader)

		assert.Nil(t, err)
		assert.Equal(t, 1, value)
		assert.Equal(t, 1, loaderCalls)
	})

	t.Run("InvokesLoaderAgainWhenTtlExpired", func(t *testing.T) {

		c := New().(*inMemoryCache)

		currentTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return currentTime }

		loaderCalls := 0
		loader := func(ctx context.Context) (interface{}, error) {
			loaderCalls++
			return loaderCalls, nil
		}

		_, _ = c.Get(context.Background(), "key", 10*time.Minute, loader)

		currentTime = currentTime.Add(11 * time.Minute)

		// act
		value, err := c.Get(context.Background(), "key", 10*time.Minute, loader)

		assert.Nil(t, err)
		assert.Equal(t, 2, value)
		assert.Equal(t, 2, loaderCalls)
	})

	t.Run("DoesNotStoreValueWhenLoaderFails", func(t *testing.T) {

		c := New()

		// act
		_, err := c.Get(context.Background(), "key", time.Minute, func(ctx context.Context) (interface{}, error) {
			return nil, errors.New("upstream is down")
		})

		assert.NotNil(t, err)
		assert.Equal(t, 0, c.Len())
	})
}

func TestInvalidate(t *testing.T) {

	t.Run("RemovesAllEntriesWithMatchingPrefix", func(t *testing.T) {

		c := New()

		storeValue := func(key string) {
			_, _ = c.Get(context.Background(), key, time.Minute, func(ctx context.Context) (interface{}, error) {
				return key, nil
			})
		}

		storeValue(RepositoryKey("pipesight", "pipesight-api", "tags"))
		storeValue(RepositoryKey("pipesight", "pipesight-api", "contributors"))
		storeValue(RepositoryKey("pipesight", "pipesight-web", "tags"))

		// act
		c.Invalidate(RepositoryKey("pipesight", "pipesight-api"))

		assert.Equal(t, 1, c.Len())
	})

	t.Run("LeavesRepositoriesSharingANamePrefixAlone", func(t *testing.T) {

		c := New()

		storeValue := func(key string) {
			_, _ = c.Get(context.Background(), key, time.Minute, func(ctx context.Context) (interface{}, error) {
				return key, nil
			})
		}

		storeValue(RepositoryKey("pipesight", "pipesight-api", "tags"))
		storeValue(RepositoryKey("pipesight", "pipesight-api-v2", "tags"))

		// act
		c.Invalidate(RepositoryKey("pipesight", "pipesight-api"))

		assert.Equal(t, 1, c.Len())
	})

	t.Run("LeavesUnrelatedEntriesAlone", func(t *testing.T) {

		c := New()

		_, _ = c.Get(context.Background(), "github:other/repo:tags", time.Minute, func(ctx context.Context) (interface{}, error) {
			return "value", nil
		})

		// act
		c.Invalidate("github:pipesight/pipesight-api")

		assert.Equal(t, 1, c.Len())
	})
}

func TestRepositoryKey(t *testing.T) {

	t.Run("JoinsOwnerRepoAndParts", func(t *testing.T) {

		// act
		key := RepositoryKey("pipesight", "pipesight-api", "commits", "2024-03")

		assert.Equal(t, "github:pipesight/pipesight-api:commits:2024-03", key)
	})
}
