package ioverifier_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iotesting"
	"github.com/gnames/gntnrs/internal/ioverifier"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/errcode"
	"github.com/gnames/gntnrs/pkg/tnrs"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	baseURL   = "https://verifier.test/api/v1"
	verifyURL = baseURL + "/verifications"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"),
	)
}

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func verifierConfig() config.VerifierConfig {
	return config.VerifierConfig{
		Enabled:       true,
		URL:           baseURL,
		Timeout:       2 * time.Second,
		RetryInterval: 10 * time.Millisecond,
	}
}

func successResponse() string {
	return `{
  "names": [
    {
      "id": "a1",
      "name": "Puma concolr",
      "matchType": "Fuzzy",
      "bestResult": {
        "dataSourceId": 1,
        "dataSourceTitleShort": "Catalogue of Life",
        "recordId": "4QHKG",
        "matchedName": "Puma concolor (Linnaeus, 1771)",
        "matchedCanonicalSimple": "Puma concolor",
        "currentRecordId": "4QHKG",
        "currentName": "Puma concolor (Linnaeus, 1771)",
        "currentCanonicalSimple": "Puma concolor",
        "isSynonym": false,
        "taxonomicStatus": "Accepted",
        "classificationPath": "Animalia|Chordata|Mammalia|Carnivora|Felidae|Puma|Puma concolor",
        "classificationRanks": "kingdom|phylum|class|order|family|genus|species",
        "editDistance": 1
      }
    },
    {
      "id": "a2",
      "name": "Felis leo",
      "matchType": "Exact",
      "bestResult": {
        "dataSourceId": 1,
        "dataSourceTitleShort": "Catalogue of Life",
        "recordId": "6MB3T",
        "matchedName": "Felis leo Linnaeus, 1758",
        "matchedCanonicalSimple": "Felis leo",
        "currentRecordId": "4CGXP",
        "currentName": "Panthera leo (Linnaeus, 1758)",
        "currentCanonicalSimple": "Panthera leo",
        "isSynonym": true,
        "taxonomicStatus": "Synonym",
        "classificationPath": "Animalia|Chordata|Mammalia|Carnivora|Felidae|Panthera|Panthera leo",
        "classificationRanks": "kingdom|phylum|class|order|family|genus|species",
        "editDistance": 0
      }
    },
    {
      "id": "a3",
      "name": "Pardosa xyz",
      "matchType": "PartialExact",
      "bestResult": {
        "dataSourceId": 1,
        "dataSourceTitleShort": "Catalogue of Life",
        "recordId": "6R8F",
        "matchedName": "Pardosa C. L. Koch, 1847",
        "matchedCanonicalSimple": "Pardosa",
        "currentRecordId": "6R8F",
        "currentName": "Pardosa C. L. Koch, 1847",
        "currentCanonicalSimple": "Pardosa",
        "classificationRanks": "kingdom|genus",
        "editDistance": 0
      }
    },
    {
      "id": "a4",
      "name": "Nonexistus nullus",
      "matchType": "NoMatch"
    }
  ]
}`
}

func queryNames() []tnrs.QueryName {
	return []tnrs.QueryName{
		{ID: "0", Name: "Puma concolr"},
		{ID: "1", Name: "Felis leo"},
		{ID: "2", Name: "Pardosa xyz"},
		{ID: "3", Name: "Nonexistus nullus"},
	}
}

func TestMatch(t *testing.T) {
	assert := assert.New(t)
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, verifyURL,
		httpmock.NewStringResponder(http.StatusOK, successResponse()))

	v := ioverifier.New(verifierConfig())
	assert.Equal("gnverifier", v.Name())

	res, err := v.Match(context.Background(), queryNames())
	require.Nil(t, err)
	assert.Len(res, 2)

	tests := []struct {
		msg, id, matched, taxon, rank string
		synonym, approx               bool
		dist                          int
		score                         float64
	}{
		{"fuzzy", "0", "Puma concolor", "Puma concolor", "species", false, true, 1, 11.0 / 12.0},
		{"synonym", "1", "Felis leo", "Panthera leo", "species", true, false, 0, 1.0},
	}

	for _, v := range tests {
		hits := res[v.id]
		require.Len(t, hits, 1, v.msg)
		h := hits[0]
		assert.Equal("gnverifier", h.SourceName, v.msg)
		assert.Equal(v.matched, h.MatchedName, v.msg)
		assert.Equal(v.taxon, h.Taxon.Name, v.msg)
		assert.Equal(v.rank, h.Rank, v.msg)
		assert.Equal(v.synonym, h.IsSynonym, v.msg)
		assert.Equal(v.approx, h.IsApprox, v.msg)
		assert.Equal(v.dist, h.EditDistance, v.msg)
		assert.InDelta(v.score, h.Score, 0.0001, v.msg)
		assert.Equal("Catalogue of Life", h.OtherData["dataSource"], v.msg)
	}
	assert.Equal("Felis leo", res["1"][0].SearchString)
	assert.Equal("Synonym", res["1"][0].OtherData["taxonomicStatus"])
}

func TestCache(t *testing.T) {
	assert := assert.New(t)
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, verifyURL,
		httpmock.NewStringResponder(http.StatusOK, successResponse()))

	v := ioverifier.New(verifierConfig(), ioverifier.OptCacheTTL(time.Minute))
	ctx := context.Background()

	res, err := v.Match(ctx, queryNames())
	require.Nil(t, err)
	assert.Len(res, 2)

	names := []tnrs.QueryName{
		{ID: "x", Name: "Felis leo"},
		{ID: "y", Name: "Nonexistus nullus"},
	}
	res, err = v.Match(ctx, names)
	require.Nil(t, err)
	assert.Len(res, 1)
	assert.Len(res["x"], 1)
	assert.Equal(1, httpmock.GetTotalCallCount())
}

func TestRetry(t *testing.T) {
	assert := assert.New(t)
	setupHTTPMock(t)

	var calls int
	httpmock.RegisterResponder(http.MethodPost, verifyURL,
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(http.StatusServiceUnavailable, ""), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, successResponse()), nil
		})

	v := ioverifier.New(verifierConfig())
	res, err := v.Match(context.Background(), queryNames())
	require.Nil(t, err)
	assert.Len(res, 2)
	assert.Equal(2, calls)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		msg    string
		status int
		body   string
		calls  int
		code   gn.ErrorCode
	}{
		{"bad request", http.StatusBadRequest, "", 1, errcode.VerifierRequestError},
		{"server down", http.StatusBadGateway, "", 3, errcode.VerifierRequestError},
		{"bad json", http.StatusOK, "{names:", 1, errcode.VerifierResponseError},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert := assert.New(t)
			setupHTTPMock(t)
			httpmock.RegisterResponder(http.MethodPost, verifyURL,
				httpmock.NewStringResponder(v.status, v.body))

			vrf := ioverifier.New(verifierConfig())
			res, err := vrf.Match(context.Background(), queryNames())
			assert.Nil(res)
			require.NotNil(t, err)

			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(v.code, gnErr.Code)
			assert.Equal(v.calls, httpmock.GetTotalCallCount())
		})
	}
}

func hangingResponder(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, req.Context().Err()
}

func TestTimeout(t *testing.T) {
	assert := assert.New(t)
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, verifyURL, hangingResponder)

	cfg := verifierConfig()
	cfg.Timeout = 50 * time.Millisecond
	v := ioverifier.New(cfg)

	start := time.Now()
	res, err := v.Match(context.Background(), queryNames())
	assert.Less(time.Since(start), time.Second)
	assert.Nil(res)
	assert.NotNil(err)
}

func TestTimeoutKeepsLocalMatches(t *testing.T) {
	assert := assert.New(t)
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, verifyURL, hangingResponder)

	cfg := verifierConfig()
	cfg.Timeout = 50 * time.Millisecond
	g := iotesting.Graph(t)
	q := tnrs.NewMultiNameQuery(g,
		tnrs.OptDoFuzzy(false),
		tnrs.OptAdapters(ioverifier.New(cfg)),
	)

	names := []tnrs.QueryName{
		{ID: "0", Name: "Homo sapiens"},
		{ID: "1", Name: "Nonexistus nullus"},
	}
	res, err := q.Run(context.Background(), names, nil)
	require.Nil(t, err)
	assert.Equal([]string{"0"}, res.MatchedIDs())
	assert.Equal([]string{"1"}, res.UnmatchedIDs())
}

func TestAdapterAddsMatches(t *testing.T) {
	assert := assert.New(t)
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, verifyURL,
		httpmock.NewStringResponder(http.StatusOK, successResponse()))

	g := iotesting.Graph(t)
	q := tnrs.NewMultiNameQuery(g,
		tnrs.OptDoFuzzy(false),
		tnrs.OptAdapters(ioverifier.New(verifierConfig())),
	)
	names := []tnrs.QueryName{
		{ID: "0", Name: "Homo sapiens"},
		{ID: "1", Name: "Felis leo"},
		{ID: "2", Name: "Nonexistus nullus"},
	}
	res, err := q.Run(context.Background(), names, nil)
	require.Nil(t, err)
	assert.Equal([]string{"0", "1"}, res.MatchedIDs())
	assert.Equal([]string{"2"}, res.UnmatchedIDs())

	nr, ok := res.Get("1")
	require.True(t, ok)
	m := nr.Matches().At(0)
	assert.Equal("gnverifier", m.SourceName())
	assert.Equal("Panthera leo", m.Taxon().Name)
}
