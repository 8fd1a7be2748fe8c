// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSessionLifecycle(t *testing.T) {
	catalog := generatedCatalog(50, 2) // 25 of type 句法学与语义学
	s := NewSession(catalog, zaptest.NewLogger(t))

	assert.False(t, s.View().Active)
	require.ErrorIs(t, s.Navigate(Next), ErrInactive)

	require.NoError(t, s.SubmitSearch(Criteria{Type: "句法学与语义学"}))
	p := s.View()
	assert.True(t, p.Active)
	assert.Equal(t, 25, p.Window.Total)
	assert.Equal(t, 2, p.Window.TotalPages)

	require.NoError(t, s.Navigate(Next))
	assert.Equal(t, 2, s.State().Page)
	require.NoError(t, s.Navigate(Next), "unavailable move is not an error")
	assert.Equal(t, 2, s.State().Page)

	require.ErrorIs(t, s.SubmitSearch(Criteria{}), ErrEmptyCriteria)
	assert.Equal(t, 2, s.State().Page, "rejected submission keeps prior state")
	assert.True(t, s.View().Active)

	require.NoError(t, s.JumpTo(1))
	assert.Equal(t, 1, s.State().Page)

	s.Reset()
	assert.Equal(t, Initial(), s.State())
}

func TestSessionsAreIndependent(t *testing.T) {
	catalog := generatedCatalog(50, 1)
	a := NewSession(catalog, nil)
	b := NewSession(catalog, nil)

	require.NoError(t, a.SubmitSearch(Criteria{Keyword: "论文"}))
	require.NoError(t, a.Navigate(Last))

	assert.False(t, b.View().Active)
	require.NoError(t, b.SubmitSearch(Criteria{Year: 1995}))
	assert.Equal(t, 1, b.State().Page)
	assert.Equal(t, 4, a.State().Page)
}

func TestSessionConcurrentDispatch(t *testing.T) {
	catalog := generatedCatalog(300, 1) // 21 pages
	s := NewSession(catalog, nil)
	require.NoError(t, s.SubmitSearch(Criteria{Keyword: "论文"}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Navigate(Next)
			_ = s.View()
		}()
	}
	wg.Wait()
	assert.Equal(t, 11, s.State().Page)
}
