package taxonomy

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_OrderAndWeights(t *testing.T) {
	tx := Default()
	require.NoError(t, tx.Validate())

	tags := make([]string, 0, len(tx.Entries))
	for _, e := range tx.Entries {
		tags = append(tags, e.Tag)
	}
	assert.Equal(t, []string{"urgent", "medical", "food", "high_priority", "disaster", "infrastructure"}, tags)

	disaster, ok := tx.Lookup("disaster")
	require.True(t, ok)
	assert.Equal(t, 0.35, disaster.Weight)
}

func TestEntry_Matches(t *testing.T) {
	urgent, _ := Default().Lookup("urgent")
	hits := urgent.Matches("emergency medical help needed heart attack")
	assert.Equal(t, []string{"emergency", "heart attack"}, hits)
	assert.Empty(t, urgent.Matches(""))
}

func TestParse_DedupesAndLowercasesTerms(t *testing.T) {
	tx, err := Parse([]byte(`
version: v2
tags:
  - tag: urgent
    weight: 0.3
    terms: [Dying, dying, " fire "]
`))
	require.NoError(t, err)
	assert.Equal(t, "v2", tx.Version)
	assert.Equal(t, []string{"dying", "fire"}, tx.Entries[0].Terms)
}

func TestNewStaticStore_NormalizesTerms(t *testing.T) {
	store := NewStaticStore(&Taxonomy{
		Version: "custom",
		Entries: []Entry{{Tag: " urgent ", Weight: 0.3, Terms: []string{"Heart Attack", " FIRE"}}},
	})

	urgent, ok := store.Load().Lookup("urgent")
	require.True(t, ok)
	assert.Equal(t, []string{"heart attack", "fire"}, urgent.Matches("fire after a heart attack"))
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":           `version: v1`,
		"missing tag":     "tags:\n  - weight: 0.1\n    terms: [a]",
		"negative weight": "tags:\n  - tag: x\n    weight: -1\n    terms: [a]",
		"duplicate tag":   "tags:\n  - tag: x\n    terms: [a]\n  - tag: x\n    terms: [b]",
		"padded dup tag":  "tags:\n  - tag: \" x\"\n    terms: [a]\n  - tag: x\n    terms: [b]",
		"bad yaml":        "tags: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestStore_SwapAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: v1\ntags:\n  - tag: urgent\n    weight: 0.3\n    terms: [fire]\n"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "v1", store.Load().Version)

	require.NoError(t, os.WriteFile(path, []byte("version: v2\ntags:\n  - tag: urgent\n    weight: 0.3\n    terms: [flood]\n"), 0o600))
	next, err := store.Reload()
	require.NoError(t, err)
	assert.Equal(t, "v2", next.Version)
	assert.Equal(t, "v2", store.Load().Version)

	// 非法文件不影响当前词表
	require.NoError(t, os.WriteFile(path, []byte("tags: []\n"), 0o600))
	_, err = store.Reload()
	assert.Error(t, err)
	assert.Equal(t, "v2", store.Load().Version)

	_, err = store.Swap(&Taxonomy{})
	assert.Error(t, err)
}

func TestStore_DefaultWhenNoPath(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, store.Load().Version)

	_, err = NewStore(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStore_ConcurrentReadDuringSwap(t *testing.T) {
	store := NewStaticStore(Default())
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Len(t, store.Load().Entries, 6)
			}
		}()
	}
	for j := 0; j < 50; j++ {
		_, err := store.Swap(Default())
		require.NoError(t, err)
	}
	wg.Wait()
}
