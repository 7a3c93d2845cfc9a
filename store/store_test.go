package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storefront "github.com/NTAravind/eshop-sub000"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "docs.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func testDoc(key string) *storefront.Document {
	return &storefront.Document{
		StoreID: "s1",
		Kind:    storefront.KindPage,
		Key:     key,
		Tree: &storefront.StorefrontNode{
			ID:    "root",
			Type:  "Box",
			Props: map[string]any{"title": key},
		},
	}
}

func TestSaveAndGetDocument(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.SaveDocument(ctx, testDoc("home")))

			got, err := s.GetDocument(ctx, "s1", storefront.KindPage, "home", storefront.StatusDraft)
			require.NoError(t, err)
			assert.Equal(t, "home", got.Key)
			assert.Equal(t, storefront.StatusDraft, got.Status)
			assert.Equal(t, "root", got.Tree.ID)
			assert.False(t, got.UpdatedAt.IsZero())

			_, err = s.GetDocument(ctx, "s1", storefront.KindPage, "missing", storefront.StatusDraft)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSaveOverwritesDraft(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.SaveDocument(ctx, testDoc("home")))

			updated := testDoc("home")
			updated.Tree.Props = map[string]any{"title": "v2"}
			require.NoError(t, s.SaveDocument(ctx, updated))

			got, err := s.GetDocument(ctx, "s1", storefront.KindPage, "home", storefront.StatusDraft)
			require.NoError(t, err)
			assert.Equal(t, "v2", got.Tree.Props["title"])
		})
	}
}

func TestPublishDocument(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// Nothing published yet.
			_, err := s.GetPublishedDocument(ctx, "s1", storefront.KindPage, "home")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.SaveDocument(ctx, testDoc("home")))
			require.NoError(t, s.PublishDocument(ctx, "s1", storefront.KindPage, "home"))

			pub, err := s.GetPublishedDocument(ctx, "s1", storefront.KindPage, "home")
			require.NoError(t, err)
			assert.Equal(t, storefront.StatusPublished, pub.Status)
			assert.Equal(t, "home", pub.Tree.Props["title"])

			// Draft edits after publish do not leak into the published copy.
			v2 := testDoc("home")
			v2.Tree.Props = map[string]any{"title": "draft-only"}
			require.NoError(t, s.SaveDocument(ctx, v2))

			pub, err = s.GetPublishedDocument(ctx, "s1", storefront.KindPage, "home")
			require.NoError(t, err)
			assert.Equal(t, "home", pub.Tree.Props["title"])

			// Publishing a missing draft fails.
			assert.ErrorIs(t, s.PublishDocument(ctx, "s1", storefront.KindPage, "nope"), ErrNotFound)
		})
	}
}

func TestListDocuments(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.SaveDocument(ctx, testDoc("home")))
			require.NoError(t, s.SaveDocument(ctx, testDoc("about")))
			require.NoError(t, s.PublishDocument(ctx, "s1", storefront.KindPage, "home"))

			other := testDoc("other-tenant")
			other.StoreID = "s2"
			require.NoError(t, s.SaveDocument(ctx, other))

			metas, err := s.ListDocuments(ctx, "s1", storefront.KindPage)
			require.NoError(t, err)
			// Two drafts plus one published row, all tenant s1.
			assert.Len(t, metas, 3)
			for _, m := range metas {
				assert.Equal(t, "s1", m.StoreID)
				assert.Equal(t, storefront.KindPage, m.Kind)
			}
		})
	}
}

func TestGetPublishedTemplateFallback(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			defaultTpl := testDoc(storefront.TemplateKeyPDP(""))
			defaultTpl.Kind = storefront.KindTemplate
			require.NoError(t, s.SaveDocument(ctx, defaultTpl))
			require.NoError(t, s.PublishDocument(ctx, "s1", storefront.KindTemplate, defaultTpl.Key))

			// No schema-specific template: fall back to PDP:default.
			got, err := GetPublishedTemplate(ctx, s, "s1", "shoes")
			require.NoError(t, err)
			assert.Equal(t, storefront.TemplateKeyPDP(""), got.Key)

			shoes := testDoc(storefront.TemplateKeyPDP("shoes"))
			shoes.Kind = storefront.KindTemplate
			require.NoError(t, s.SaveDocument(ctx, shoes))
			require.NoError(t, s.PublishDocument(ctx, "s1", storefront.KindTemplate, shoes.Key))

			got, err = GetPublishedTemplate(ctx, s, "s1", "shoes")
			require.NoError(t, err)
			assert.Equal(t, storefront.TemplateKeyPDP("shoes"), got.Key)
		})
	}
}

func TestSaveDocumentRejectsNilTree(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.SaveDocument(context.Background(), &storefront.Document{StoreID: "s1", Kind: storefront.KindPage, Key: "x"})
			assert.Error(t, err)
		})
	}
}
