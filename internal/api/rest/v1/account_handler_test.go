//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/pricing"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type accountFixture struct {
	handler       AccountHandler
	profiles      *MockProfileService
	subscriptions *MockSubscriptionService
	pricing       *MockPricingService
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		profiles:      new(MockProfileService),
		subscriptions: new(MockSubscriptionService),
		pricing:       new(MockPricingService),
	}
	f.handler = NewAccountHandler(f.profiles, f.subscriptions, f.pricing)
	return f
}

func TestAccountHandler_Profile(t *testing.T) {
	f := newAccountFixture()
	f.profiles.On("Get", mock.Anything, "user_1").
		Return(&profiles.Profile{ClerkUserID: "user_1", Email: "ada@example.com"}, nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/profile", nil)
	SetUserID(c, "user_1")

	f.handler.Profile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.com")
}

func TestAccountHandler_Profile_NotSynced(t *testing.T) {
	f := newAccountFixture()
	f.profiles.On("Get", mock.Anything, "user_1").Return(nil, profiles.ErrNotFound)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/profile", nil)
	SetUserID(c, "user_1")

	f.handler.Profile(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccountHandler_CurrentSubscription(t *testing.T) {
	f := newAccountFixture()
	f.subscriptions.On("Current", mock.Anything, "user_1").Return(&subscriptions.Current{
		Subscription: &subscriptions.Subscription{
			ID:                   "0b8f6a3e-4f16-4c3a-9d55-2f1f0c2b7a10",
			ClerkUserID:          "user_1",
			PaddleSubscriptionID: "sub_1",
			PlanType:             credits.PlanStarter,
			Status:               subscriptions.StatusActive,
			CreatedAt:            time.Now().UTC(),
		},
		Balance: &credits.Balance{Credits: 30, PlanType: credits.PlanStarter, HasCredits: true},
	}, nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/subscriptions/current", nil)
	SetUserID(c, "user_1")

	f.handler.CurrentSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sub_1")
}

func TestAccountHandler_CurrentSubscription_FreeUser(t *testing.T) {
	f := newAccountFixture()
	f.subscriptions.On("Current", mock.Anything, "user_1").Return(&subscriptions.Current{
		Balance: &credits.Balance{Credits: 3, PlanType: credits.PlanFree, HasCredits: true},
	}, nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/subscriptions/current", nil)
	SetUserID(c, "user_1")

	f.handler.CurrentSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeJSON(t, w)
	assert.Nil(t, body["subscription"])
}

func TestAccountHandler_Pricing(t *testing.T) {
	f := newAccountFixture()
	f.pricing.On("ForHost", "genno.io").Return(&pricing.Pricing{
		Environment: "production",
		ClientToken: "live_token",
		Plans: pricing.Catalog(
			pricing.PriceIDs{Monthly: "pri_sm", Yearly: "pri_sy"},
			pricing.PriceIDs{Monthly: "pri_tm", Yearly: "pri_ty"},
		),
	})

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/pricing", nil)
	c.Request.Host = "genno.io"

	f.handler.Pricing(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, "production", body["environment"])
	assert.Equal(t, "live_token", body["clientToken"])
	plans := body["plans"].([]any)
	assert.Len(t, plans, 3)
	starter := plans[1].(map[string]any)
	assert.Equal(t, "pri_sm", starter["priceIds"].(map[string]any)["monthly"])
}
