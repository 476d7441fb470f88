package usecases

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

const rentalLength = 72 * time.Hour

// rentalCreatedFor returns the purchase time of a rental expiring at now+remaining.
func rentalCreatedFor(now time.Time, remaining time.Duration) time.Time {
	return now.Add(remaining - rentalLength)
}

func newNoticeUseCase(rentals *memoryRentals, profiles stubProfiles, sender *mockSender) *SendExpirationNoticesUseCase {
	return NewSendExpirationNoticesUseCase(rentals, profiles, sender, &mutexLocker{}, logger.NewNopLogger())
}

func TestSendExpirationNotices_48hWarning(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	id := rentals.add("user-1", tier.Rental, rentalCreatedFor(testNow, 30*time.Hour))
	sender := &mockSender{}

	sent, err := newNoticeUseCase(rentals, profilesFor("user-1"), sender).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "user-1@example.com", msgs[0].Address)
	assert.Equal(t, dto.MessageRentalWarning48h, msgs[0].Kind)
	assert.Equal(t, "3-Day Rental", msgs[0].Data.TierName)
	require.NotNil(t, msgs[0].Data.ExpiresAt)
	assert.Equal(t, testNow.Add(30*time.Hour), *msgs[0].Data.ExpiresAt)
	assert.True(t, rentals.marks[id].Warning48hSent)
	assert.False(t, rentals.marks[id].Warning24hSent)
}

func TestSendExpirationNotices_RunTwiceSendsOnce(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	rentals.add("user-1", tier.Rental, rentalCreatedFor(testNow, 30*time.Hour))
	rentals.add("user-2", tier.Rental, rentalCreatedFor(testNow, 5*time.Hour))
	rentals.add("user-3", tier.Rental, rentalCreatedFor(testNow, -2*time.Hour))
	sender := &mockSender{}
	uc := newNoticeUseCase(rentals, profilesFor("user-1", "user-2", "user-3"), sender)

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first)

	rentals.setNow(testNow.Add(20 * time.Minute))
	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second)

	seen := make(map[string]int)
	for _, m := range sender.messages() {
		seen[m.Address+"/"+string(m.Kind)]++
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, key)
	}
	assert.Len(t, seen, 3)
}

func TestSendExpirationNotices_OverlappingPassesSendOnce(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	rentals.add("user-1", tier.Rental, rentalCreatedFor(testNow, 12*time.Hour))

	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	sender := &mockSender{
		SendNotificationFunc: func(ctx context.Context, address string, kind dto.MessageKind, data dto.MessageData) error {
			entered <- struct{}{}
			<-release
			return nil
		},
	}
	// Scheduled job and manual run share the store and the lock.
	uc := newNoticeUseCase(rentals, profilesFor("user-1"), sender)

	var wg sync.WaitGroup
	results := make([]int, 2)
	run := func(i int) {
		defer wg.Done()
		sent, err := uc.Execute(context.Background())
		assert.NoError(t, err)
		results[i] = sent
	}

	wg.Add(1)
	go run(0)
	<-entered

	wg.Add(1)
	go run(1)
	select {
	case <-entered:
		t.Fatal("second pass reached the sender while the first was mid-send")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	wg.Wait()

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, dto.MessageRentalWarning24h, msgs[0].Kind)
	assert.Equal(t, 1, results[0]+results[1])
}

func TestSendExpirationNotices_LockFailure(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	rentals.add("user-1", tier.Rental, rentalCreatedFor(testNow, 5*time.Hour))
	sender := &mockSender{}
	locker := &mutexLocker{LockErr: stderrors.New("redis: connection refused")}

	uc := NewSendExpirationNoticesUseCase(rentals, profilesFor("user-1"), sender, locker, logger.NewNopLogger())
	sent, err := uc.Execute(context.Background())

	assert.Zero(t, sent)
	assert.ErrorIs(t, err, locker.LockErr)
	assert.Empty(t, sender.messages())
}

func TestSendExpirationNotices_LocksSweepKey(t *testing.T) {
	locker := &mutexLocker{}
	uc := NewSendExpirationNoticesUseCase(newMemoryRentals(testNow), profilesFor(), &mockSender{}, locker, logger.NewNopLogger())

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{expirationSweepKey}, locker.keys)
}

func TestSendExpirationNotices_FollowsRentalLifecycle(t *testing.T) {
	created := testNow
	rentals := newMemoryRentals(created)
	rentals.add("user-1", tier.Rental, created)
	sender := &mockSender{}
	uc := newNoticeUseCase(rentals, profilesFor("user-1"), sender)

	// Hourly passes across the whole rental and a day beyond.
	for hour := 0; hour <= 96; hour++ {
		rentals.setNow(created.Add(time.Duration(hour) * time.Hour))
		_, err := uc.Execute(context.Background())
		require.NoError(t, err)
	}

	var kinds []dto.MessageKind
	for _, m := range sender.messages() {
		kinds = append(kinds, m.Kind)
	}
	assert.Equal(t, []dto.MessageKind{
		dto.MessageRentalWarning48h,
		dto.MessageRentalWarning24h,
		dto.MessageRentalExpired,
	}, kinds)
}

func TestSendExpirationNotices_SkipsSupersededRental(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	rentals.add("user-1", tier.Rental, rentalCreatedFor(testNow, 10*time.Hour))
	rentals.add("user-1", tier.Regular, testNow.Add(-time.Hour))
	sender := &mockSender{}

	sent, err := newNoticeUseCase(rentals, profilesFor("user-1"), sender).Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, sender.messages())
}

func TestSendExpirationNotices_ExpiryBoundaries(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	// Expires exactly now: still active, not yet expired.
	rentals.add("user-1", tier.Rental, rentalCreatedFor(testNow, 0))
	// Lapsed more than a week ago.
	rentals.add("user-2", tier.Rental, rentalCreatedFor(testNow, -8*24*time.Hour))
	// More than two days left.
	rentals.add("user-3", tier.Rental, rentalCreatedFor(testNow, 49*time.Hour))
	sender := &mockSender{}

	sent, err := newNoticeUseCase(rentals, profilesFor("user-1", "user-2", "user-3"), sender).Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestSendExpirationNotices_SendFailureIsRetried(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	failing := rentals.add("user-1", tier.Rental, rentalCreatedFor(testNow, 5*time.Hour))
	rentals.add("user-2", tier.Rental, rentalCreatedFor(testNow, 6*time.Hour))

	down := true
	sender := &mockSender{
		SendNotificationFunc: func(ctx context.Context, address string, kind dto.MessageKind, data dto.MessageData) error {
			if down && address == "user-1@example.com" {
				return stderrors.New("smtp: connection refused")
			}
			return nil
		},
	}
	uc := newNoticeUseCase(rentals, profilesFor("user-1", "user-2"), sender)

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.False(t, rentals.marks[failing].Warning24hSent)

	down = false
	sent, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.True(t, rentals.marks[failing].Warning24hSent)
}

func TestSendExpirationNotices_MissingContactIsSkipped(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	rentals.add("ghost", tier.Rental, rentalCreatedFor(testNow, 5*time.Hour))
	rentals.add("user-2", tier.Rental, rentalCreatedFor(testNow, 5*time.Hour))
	sender := &mockSender{}

	sent, err := newNoticeUseCase(rentals, profilesFor("user-2"), sender).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestSendExpirationNotices_MarkFailureIsReported(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	rentals.add("user-1", tier.Rental, rentalCreatedFor(testNow, 5*time.Hour))
	rentals.MarkErr = stderrors.New("deadlock found")
	sender := &mockSender{}

	sent, err := newNoticeUseCase(rentals, profilesFor("user-1"), sender).Execute(context.Background())
	assert.Equal(t, 1, sent)
	require.Error(t, err)
	assert.ErrorIs(t, err, rentals.MarkErr)
}

func TestSendExpirationNotices_ListFailure(t *testing.T) {
	rentals := newMemoryRentals(testNow)
	rentals.ListErr = stderrors.New("db down")

	sent, err := newNoticeUseCase(rentals, profilesFor(), &mockSender{}).Execute(context.Background())
	assert.Zero(t, sent)
	assert.ErrorIs(t, err, rentals.ListErr)
}

func TestWindowsAt(t *testing.T) {
	windows := windowsAt(testNow)
	require.Len(t, windows, 3)
	assert.Equal(t, entitlement.NotificationWarning48h, windows[0].kind)
	assert.Equal(t, windows[0].from, windows[1].to)
	assert.Equal(t, windows[1].from, windows[2].to)
	assert.Equal(t, testNow, windows[2].to)
}
