package sessionstore

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	store *Store
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
}

func (s *StoreSuite) TestCreatesIdleSessionOnFirstUse() {
	err := s.store.WithSession("42", func(sess *domain.Session) error {
		s.Equal("42", sess.UserID)
		s.Equal(domain.StateMenuIdle, sess.State)
		s.True(sess.Draft.IsEmpty())
		return nil
	})
	s.Require().NoError(err)
}

func (s *StoreSuite) TestKeepsStateBetweenTurns() {
	s.Require().NoError(s.store.WithSession("42", func(sess *domain.Session) error {
		sess.State = domain.StateEnterHours
		sess.Draft.ProjectName = "Website"
		return nil
	}))

	snap := s.store.Snapshot("42")
	s.Require().NotNil(snap)
	s.Equal(domain.StateEnterHours, snap.State)
	s.Equal("Website", snap.Draft.ProjectName)
	s.Nil(s.store.Snapshot("7"))
}

func (s *StoreSuite) TestReturnsCallbackError() {
	want := errors.New("boom")
	err := s.store.WithSession("42", func(*domain.Session) error { return want })
	s.ErrorIs(err, want)
}

func (s *StoreSuite) TestDropsSessionLeftIdle() {
	s.Require().NoError(s.store.WithSession("42", func(sess *domain.Session) error {
		sess.State = domain.StateStatsMenu
		sess.StatsFilter = "Website"
		return nil
	}))
	s.Equal(1, s.store.Len())

	s.Require().NoError(s.store.WithSession("42", func(sess *domain.Session) error {
		sess.Reset()
		return nil
	}))
	s.Equal(0, s.store.Len())
	s.Nil(s.store.Snapshot("42"))
}

func (s *StoreSuite) TestKeepsIdleSessionWhileTurnPending() {
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.store.WithSession("42", func(*domain.Session) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	second := make(chan struct{})
	go func() {
		defer close(second)
		_ = s.store.WithSession("42", func(sess *domain.Session) error {
			sess.State = domain.StateEnterHours
			return nil
		})
	}()
	// Let the second turn queue up behind the first.
	time.Sleep(10 * time.Millisecond)
	close(release)
	<-done
	<-second

	snap := s.store.Snapshot("42")
	s.Require().NotNil(snap)
	s.Equal(domain.StateEnterHours, snap.State)
}

func (s *StoreSuite) TestSerializesTurnsOfOneUser() {
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.WithSession("42", func(sess *domain.Session) error {
				// Non-atomic read-modify-write; lost updates show up without serialization.
				hours := sess.Draft.Hours
				time.Sleep(time.Microsecond)
				sess.Draft.Hours = hours + 1
				return nil
			})
		}()
	}
	wg.Wait()

	s.InDelta(100.0, s.store.Snapshot("42").Draft.Hours, 1e-9)
}

func (s *StoreSuite) TestUsersDoNotBlockEachOther() {
	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.store.WithSession("slow", func(*domain.Session) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	done := make(chan struct{})
	go func() {
		_ = s.store.WithSession("fast", func(*domain.Session) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("turn of another user was blocked")
	}
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}
