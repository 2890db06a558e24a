//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-dog-shelter/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type dogPayload struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Status string `json:"status"`
}

type apiError struct {
	status int
	title  string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.title, e.status)
}

func TestAdoptionPortalContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleDogPayload()
	dogMatcher := matchers.Map{
		"id":     matchers.Like(example["id"]),
		"name":   matchers.Like(example["name"]),
		"breed":  matchers.Like(example["breed"]),
		"status": matchers.Term("AVAILABLE", "AVAILABLE|PENDING|ADOPTED"),
	}
	availableBeagle := matchers.Map{
		"id":     matchers.Like(2),
		"name":   matchers.Like("Daisy"),
		"breed":  matchers.S(pacttest.FilterBreed),
		"status": matchers.S("AVAILABLE"),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateDogsBaseline).
		UponReceiving("a request to list dogs in an empty shelter").
		WithRequest("GET", "/api/dogs").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody([]any{})
		})

	pact.AddInteraction().
		Given(pacttest.StateDogsListed).
		UponReceiving("a request for available dogs of one breed").
		WithRequest("GET", "/api/dogs", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("breed", matchers.S(pacttest.FilterBreed))
			b.Query("available", matchers.S("true"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(availableBeagle, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateDogsListed).
		UponReceiving("a request for the breed catalog").
		WithRequest("GET", "/api/breeds").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody([]string{pacttest.FilterBreed, "Husky", "Labrador"})
		})

	pact.AddInteraction().
		Given(pacttest.StateDogExists).
		UponReceiving("a request to fetch an existing dog").
		WithRequest("GET", fmt.Sprintf("/api/dogs/%d", pacttest.ExistingDogID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(dogMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateDogMissing).
		UponReceiving("a request for a missing dog").
		WithRequest("GET", fmt.Sprintf("/api/dogs/%d", pacttest.MissingDogID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newDogClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var empty []dogPayload
		if err := client.get(ctx, "/api/dogs", nil, &empty); err != nil {
			return fmt.Errorf("list empty shelter: %w", err)
		}
		if empty == nil || len(empty) != 0 {
			return fmt.Errorf("expected empty array, got %+v", empty)
		}

		var filtered []dogPayload
		query := url.Values{"breed": {pacttest.FilterBreed}, "available": {"true"}}
		if err := client.get(ctx, "/api/dogs", query, &filtered); err != nil {
			return fmt.Errorf("list filtered dogs: %w", err)
		}
		for _, dog := range filtered {
			if dog.Breed != pacttest.FilterBreed || dog.Status != "AVAILABLE" {
				return fmt.Errorf("filter leaked %+v", dog)
			}
		}

		var breeds []string
		if err := client.get(ctx, "/api/breeds", nil, &breeds); err != nil {
			return fmt.Errorf("list breeds: %w", err)
		}
		if len(breeds) == 0 {
			return fmt.Errorf("expected breeds")
		}

		var dog dogPayload
		if err := client.get(ctx, fmt.Sprintf("/api/dogs/%d", pacttest.ExistingDogID), nil, &dog); err != nil {
			return fmt.Errorf("get dog: %w", err)
		}
		if dog.ID != pacttest.ExistingDogID {
			return fmt.Errorf("expected dog id %d, got %+v", pacttest.ExistingDogID, dog)
		}

		err := client.get(ctx, fmt.Sprintf("/api/dogs/%d", pacttest.MissingDogID), nil, &dog)
		if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for dog %d, got %v", pacttest.MissingDogID, err)
		}
		return nil
	})
	require.NoError(t, err)
}

type dogClient struct {
	baseURL    string
	httpClient *http.Client
}

func newDogClient(config pactconsumer.MockServerConfig) *dogClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &dogClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *dogClient) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var problem struct {
			Title string `json:"title"`
		}
		_ = json.NewDecoder(res.Body).Decode(&problem)
		return apiError{status: res.StatusCode, title: problem.Title}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
