package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/idgen"
	"github.com/hollowpress/hollow-press/pkg/service/search"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type recordingSearcher struct {
	got model.SearchRequest
	err error
}

func (s *recordingSearcher) Search(_ context.Context, req model.SearchRequest) (*model.SearchEnvelope, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &model.SearchEnvelope{Results: []*model.SearchHit{}, Meta: model.SearchMeta{Query: req.Query, Page: 1, Limit: 10}}, nil
}

func TestSearchOptionsRequest(t *testing.T) {
	opts := searchOptions{types: "documents, Users ,bogus", limit: 5, page: 2, from: "7", category: " Horror ", privileged: true}
	req, err := opts.request("midnight hour", now)
	require.NoError(t, err)

	assert.Equal(t, "midnight hour", req.Query)
	assert.Equal(t, []model.Category{model.CategoryDocument, model.CategoryAccount}, req.Types)
	assert.Equal(t, 5, req.Limit)
	assert.Equal(t, 2, req.Page)
	require.NotNil(t, req.DateFrom)
	assert.Equal(t, time.Date(2026, 10, 8, 0, 0, 0, 0, time.UTC), *req.DateFrom)
	assert.Equal(t, "Horror", req.Category)
	assert.True(t, req.Privileged)
}

func TestRunSearch(t *testing.T) {
	t.Run("输出 JSON", func(t *testing.T) {
		s := &recordingSearcher{}
		var out bytes.Buffer
		require.NoError(t, runSearch(context.Background(), &out, s, "ghost", searchOptions{}, now))

		var env model.SearchEnvelope
		require.NoError(t, json.Unmarshal(out.Bytes(), &env))
		assert.Equal(t, "ghost", env.Meta.Query)
		assert.NotNil(t, env.Results)
		assert.Nil(t, s.got.DateFrom)
	})

	t.Run("无法识别的类型直接报错", func(t *testing.T) {
		s := &recordingSearcher{}
		err := runSearch(context.Background(), &bytes.Buffer{}, s, "ghost", searchOptions{types: "foo"}, now)
		assert.True(t, errors.Is(err, model.ErrUnknownCategory))
		assert.Empty(t, s.got.Query)
	})

	t.Run("错误被包装", func(t *testing.T) {
		s := &recordingSearcher{err: search.ErrInvalidQuery}
		err := runSearch(context.Background(), &bytes.Buffer{}, s, "a", searchOptions{}, now)
		assert.True(t, errors.Is(err, search.ErrInvalidQuery))
	})
}

func TestRunSearchAgainstReferenceDocs(t *testing.T) {
	require.NoError(t, idgen.InitSqidsEncoderWithSeed("cli-test"))
	ref, err := search.NewReferenceSource()
	require.NoError(t, err)
	registry, err := search.NewRegistry(ref)
	require.NoError(t, err)
	svc := search.NewSearchService(registry, nil, search.Options{})
	defer svc.Close()

	var out bytes.Buffer
	require.NoError(t, runSearch(context.Background(), &out, svc, "refund", searchOptions{types: "reference"}, now))

	var env model.SearchEnvelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	require.NotEmpty(t, env.Results)
	assert.Equal(t, model.CategoryReference, env.Results[0].Type)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"serve", "search", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	searchCmd, _, err := root.Find([]string{"search"})
	require.NoError(t, err)
	for _, flag := range []string{"types", "limit", "page", "from", "category", "privileged"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(flag), flag)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"search"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--json"})
	require.NoError(t, root.Execute())

	var info map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}
