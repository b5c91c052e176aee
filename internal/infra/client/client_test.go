package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/infra/client"
	"github.com/boddenberg/tochka-go/internal/infra/observability"
)

const testToken = "test-bearer-token"

const accountsBody = `{
  "Data": {"Account": [
    {"customerCode": "300000092", "accountId": "40702810840020003019/044525104",
     "status": "Enabled", "statusUpdateDateTime": "2024-05-01T10:00:00+00:00",
     "currency": "RUB", "accountType": "Business", "accountSubType": "CurrentAccount",
     "registrationDate": "2020-01-15"},
    {"customerCode": "300000092", "accountId": "40702810840020003020/044525104",
     "status": "Enabled", "statusUpdateDateTime": "2024-05-01T10:00:00+00:00",
     "currency": "RUB", "accountType": "Business", "accountSubType": "CurrentAccount",
     "registrationDate": "2021-03-01"},
    {"customerCode": "100000001", "accountId": "40817810840020003021/044525104",
     "status": "Enabled", "statusUpdateDateTime": "2024-05-01T10:00:00+00:00",
     "currency": "RUB", "accountType": "Personal", "accountSubType": "CurrentAccount",
     "registrationDate": "2021-03-01"}
  ]},
  "Links": {"self": "https://enter.tochka.com/uapi/open-banking/v1.0/accounts"},
  "Meta": {"totalPages": 1}
}`

const paymentBody = `{
  "Data": {
    "purpose": "Invoice 42",
    "amount": 1234.5,
    "status": "CREATED",
    "operationId": "beeac4a4-0ef6-4dc6-b4b5-4a6e31fc1b9c",
    "paymentLink": "https://merch.example/order/?uuid=beeac4a4",
    "paymentMode": ["sbp", "card"]
  },
  "Links": {"self": "https://enter.tochka.com/uapi/acquiring/v1.0/payments"},
  "Meta": {"totalPages": 1}
}`

type recorded struct {
	Method string
	Path   string
	URI    string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeAPI serves one canned response and records every request.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		URI:    r.RequestURI,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	status, resp := f.status, f.body
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp))
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request reached the server")
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, h http.Handler, mutate ...func(*client.Config)) (*client.Client, *observability.Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := client.Config{
		Environment: domain.Sandbox,
		BaseURL:     srv.URL + "/uapi/",
		Token:       testToken,
		ClientID:    "app-client-id",
	}
	for _, m := range mutate {
		m(&cfg)
	}

	metrics := observability.NewMetrics()
	c, err := client.NewClient(srv.Client(), cfg, metrics, zap.NewNop())
	require.NoError(t, err)
	return c, metrics
}

func TestBuildURL(t *testing.T) {
	testCases := []struct {
		name    string
		service client.Service
		path    string
		want    string
	}{
		{name: "plain path", service: client.ServiceOpenBanking, path: "accounts", want: "https://enter.tochka.com/uapi/open-banking/v1.0/accounts"},
		{name: "one leading slash trimmed", service: client.ServiceOpenBanking, path: "/accounts", want: "https://enter.tochka.com/uapi/open-banking/v1.0/accounts"},
		{name: "only one slash trimmed", service: client.ServiceAcquiring, path: "//payments", want: "https://enter.tochka.com/uapi/acquiring/v1.0//payments"},
		{name: "nested path", service: client.ServiceWebhook, path: "abc/test_send", want: "https://enter.tochka.com/uapi/webhook/v1.0/abc/test_send"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := client.BuildURL(domain.ProductionBaseURL, tc.service, client.V1_0, tc.path)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := client.NewClient(nil, client.Config{}, nil, nil)

	var cfgErr *domain.ErrConfig
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewClient_EnvironmentBaseURL(t *testing.T) {
	c, err := client.NewClient(nil, client.Config{Environment: domain.Production, Token: "t"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://enter.tochka.com/uapi/open-banking/v1.0/accounts",
		c.URL(client.ServiceOpenBanking, client.V1_0, "accounts"))
}

func TestPipeline_AttachesBearerToken(t *testing.T) {
	api := &fakeAPI{body: accountsBody}
	c, _ := newTestClient(t, api)

	_, err := c.GetAccountsList(context.Background())
	require.NoError(t, err)

	req := api.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/uapi/open-banking/v1.0/accounts", req.Path)
	assert.Equal(t, "Bearer "+testToken, req.Header.Get("Authorization"))
	assert.Equal(t, client.DefaultUserAgent, req.Header.Get("User-Agent"))
}

func TestPipeline_StatusClassification(t *testing.T) {
	testCases := []struct {
		status int
		body   string
		want   domain.ErrorKind
	}{
		{status: http.StatusUnauthorized, body: `{"message":"token expired"}`, want: domain.KindUnauthorized},
		{status: http.StatusUnauthorized, body: `<html>not json`, want: domain.KindUnauthorized},
		{status: http.StatusForbidden, body: `{}`, want: domain.KindForbidden},
		{status: http.StatusNotFound, body: ``, want: domain.KindNotFound},
		{status: http.StatusTooManyRequests, body: `slow down`, want: domain.KindTooManyRequests},
		{status: http.StatusInternalServerError, body: `boom`, want: domain.KindServer},
		{status: http.StatusBadGateway, body: `bad gateway`, want: domain.KindServer},
		{status: http.StatusBadRequest, body: `{"code":"400"}`, want: domain.KindAPI},
		{status: http.StatusConflict, body: `conflict`, want: domain.KindAPI},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status)+"/"+string(tc.want), func(t *testing.T) {
			api := &fakeAPI{status: tc.status, body: tc.body}
			c, metrics := newTestClient(t, api)

			_, err := c.GetAccountsList(context.Background())
			require.Error(t, err)
			assert.Equal(t, tc.want, domain.KindOf(err))
			assert.Equal(t, float64(1), metrics.RequestCount("GetAccountsList", string(tc.want)))
		})
	}
}

func TestPipeline_ErrorBodiesAreKept(t *testing.T) {
	api := &fakeAPI{status: http.StatusServiceUnavailable, body: `maintenance`}
	c, _ := newTestClient(t, api)

	_, err := c.GetCustomersList(context.Background())

	var serverErr *domain.ErrServer
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusServiceUnavailable, serverErr.Status)
	assert.Equal(t, "maintenance", serverErr.Body)

	api.mu.Lock()
	api.status, api.body = http.StatusUnprocessableEntity, `{"errors":["amount"]}`
	api.mu.Unlock()
	_, err = c.GetCustomersList(context.Background())

	var apiErr *domain.ErrAPI
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, `{"errors":["amount"]}`, apiErr.Body)
}

func TestPipeline_DeserializeErrorCarriesPath(t *testing.T) {
	body := `{
	  "Data": {"Operation": [{
	    "amount": "not-a-number", "status": "CREATED",
	    "operationId": "beeac4a4-0ef6-4dc6-b4b5-4a6e31fc1b9c",
	    "paymentLink": "https://merch.example"
	  }]},
	  "Links": {"self": "x"}, "Meta": {"totalPages": 1}
	}`
	api := &fakeAPI{body: body}
	c, metrics := newTestClient(t, api)

	_, err := c.PaymentOperationInfo(context.Background(), "beeac4a4-0ef6-4dc6-b4b5-4a6e31fc1b9c")

	var decodeErr *domain.ErrDeserialize
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "Data.Operation[0].amount", decodeErr.Path)
	assert.Contains(t, decodeErr.Message, "invalid type")
	assert.Equal(t, body, decodeErr.Raw)
	assert.Equal(t, float64(1), metrics.RequestCount("PaymentOperationInfo", string(domain.KindDeserialize)))
}

func TestPipeline_MissingRequiredField(t *testing.T) {
	body := `{"Data": {"Operation": [{"amount": 1, "status": "CREATED", "paymentLink": "x"}]},
	  "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	c, _ := newTestClient(t, &fakeAPI{body: body})

	_, err := c.PaymentOperationInfo(context.Background(), "op")

	var decodeErr *domain.ErrDeserialize
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "Data.Operation[0]", decodeErr.Path)
	assert.Equal(t, "missing field `operationId`", decodeErr.Message)
}

func TestPipeline_UnknownEnumVariant(t *testing.T) {
	body := strings.Replace(paymentBody, `"CREATED"`, `"SOMETHING_NEW"`, 1)
	c, _ := newTestClient(t, &fakeAPI{body: body})

	_, err := c.CreatePaymentOperation(context.Background(),
		domain.NewCreatePaymentPayload(10, "300000092", "test"), domain.PaymentPathPayments)

	var decodeErr *domain.ErrDeserialize
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "Data.status", decodeErr.Path)
	assert.Contains(t, decodeErr.Message, "SOMETHING_NEW")
}

func TestPipeline_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	httpClient := srv.Client()
	httpClient.Timeout = 50 * time.Millisecond
	c, err := client.NewClient(httpClient, client.Config{BaseURL: srv.URL + "/", Token: testToken}, nil, nil)
	require.NoError(t, err)

	_, err = c.GetAccountsList(context.Background())

	var timeoutErr *domain.ErrTimeout
	require.ErrorAs(t, err, &timeoutErr)
}

func TestPipeline_BodyReadTimeoutIsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "4096")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Data":{"Account":[`))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	httpClient := srv.Client()
	httpClient.Timeout = 100 * time.Millisecond
	c, err := client.NewClient(httpClient, client.Config{BaseURL: srv.URL + "/", Token: testToken}, nil, nil)
	require.NoError(t, err)

	_, err = c.GetAccountsList(context.Background())

	assert.Equal(t, domain.KindTimeout, domain.KindOf(err))
}

func TestPipeline_TruncatedBodyIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "4096")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Data":{"Account":[`))
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewClient(srv.Client(), client.Config{BaseURL: srv.URL + "/", Token: testToken}, nil, nil)
	require.NoError(t, err)

	_, err = c.GetAccountsList(context.Background())

	var netErr *domain.ErrNetwork
	require.ErrorAs(t, err, &netErr)
	assert.NotEqual(t, domain.KindDeserialize, domain.KindOf(err))
}

func TestPipeline_ContextDeadlineIsTimeout(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetAccountsList(ctx)
	assert.Equal(t, domain.KindTimeout, domain.KindOf(err))
}

func TestPipeline_CancellationIsNetwork(t *testing.T) {
	c, _ := newTestClient(t, &fakeAPI{body: accountsBody})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetAccountsList(ctx)

	var netErr *domain.ErrNetwork
	require.ErrorAs(t, err, &netErr)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPipeline_NetworkErrorOmitsURL(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/uapi/"
	srv.Close()

	c, err := client.NewClient(nil, client.Config{BaseURL: base, Token: testToken}, nil, nil)
	require.NoError(t, err)

	_, err = c.GetAccountInfo(context.Background(), "secret-account")

	var netErr *domain.ErrNetwork
	require.ErrorAs(t, err, &netErr)
	assert.NotContains(t, netErr.Error(), "secret-account")
	assert.NotContains(t, netErr.Error(), "/uapi/")
}

func TestGetBalancesList_Paginated(t *testing.T) {
	body := `{
	  "Data": {"Balance": [{
	    "accountId": "40702810840020003019/044525104", "creditDebitIndicator": "Credit",
	    "type": "OpeningAvailable", "dateTime": "2024-05-01T00:00:00Z",
	    "Amount": {"amount": 1500.25, "currency": "RUB"}
	  }]},
	  "Links": {"self": "https://x/balances?page=1", "next": "https://x/balances?page=2"},
	  "Meta": {"totalPages": 3}
	}`
	c, _ := newTestClient(t, &fakeAPI{body: body})

	resp, err := c.GetBalancesList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(3), resp.Meta.TotalPages)
	require.NotNil(t, resp.Links.Next)
	assert.Equal(t, "https://x/balances?page=2", *resp.Links.Next)
	assert.Nil(t, resp.Links.Prev)
	require.Len(t, resp.Data.Balance, 1)
	assert.Equal(t, domain.Credit, resp.Data.Balance[0].CreditDebitIndicator)
	assert.Equal(t, 1500.25, resp.Data.Balance[0].Amount.Amount)
	assert.Equal(t, "RUB", resp.Data.Balance[0].Amount.Currency.String())
}

func TestOpenBankingPaths(t *testing.T) {
	const accountID = "40702810840020003019/044525104"
	api := &fakeAPI{}
	c, _ := newTestClient(t, api)
	ctx := context.Background()

	// Bodies are empty so every call fails to decode; only the request matters.
	// Ids are sent verbatim: the slash inside an account id stays a slash.
	_, _ = c.GetAccountInfo(ctx, accountID)
	assert.Equal(t, "/uapi/open-banking/v1.0/accounts/40702810840020003019/044525104", api.last(t).URI)

	_, _ = c.GetBalanceInfo(ctx, accountID)
	assert.Equal(t, "/uapi/open-banking/v1.0/accounts/40702810840020003019/044525104/balances", api.last(t).URI)
	assert.Equal(t, c.URL(client.ServiceOpenBanking, client.V1_0, "accounts/"+accountID+"/balances"),
		strings.TrimSuffix(c.URL(client.ServiceOpenBanking, client.V1_0, ""), "/uapi/open-banking/v1.0/")+api.last(t).URI)

	_, _ = c.GetAuthorizedCardTransactions(ctx, accountID)
	assert.Equal(t, "/uapi/open-banking/v1.0/accounts/40702810840020003019/044525104/authorized-card-transactions", api.last(t).URI)

	_, _ = c.GetCustomerInfo(ctx, "300000092")
	assert.Equal(t, "/uapi/open-banking/v1.0/customers/300000092", api.last(t).URI)

	_, _ = c.GetStatementsList(ctx)
	assert.Equal(t, "/uapi/open-banking/v1.0/statements", api.last(t).URI)

	_, _ = c.GetStatement(ctx, accountID, "st1")
	assert.Equal(t, "/uapi/open-banking/v1.0/accounts/40702810840020003019/044525104/statements/st1", api.last(t).URI)
}

func TestCreatePaymentOperation_WrapsPayload(t *testing.T) {
	api := &fakeAPI{body: paymentBody}
	c, _ := newTestClient(t, api)

	payload := domain.NewCreatePaymentPayload(1234.5, "300000092", "Invoice 42")
	payload.PaymentMode = []domain.PaymentMode{domain.PaymentModeSBP, domain.PaymentModeCard}
	payload.Client = &domain.ReceiptClient{Email: "buyer@example.com"}
	payload.Items = []domain.ReceiptItem{{Name: "Widget", Amount: 1234.5, Quantity: 1}}

	resp, err := c.CreatePaymentOperation(context.Background(), payload, domain.PaymentPathWithReceipt)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCreated, resp.Data.Status)
	assert.Equal(t, "beeac4a4-0ef6-4dc6-b4b5-4a6e31fc1b9c", resp.Data.OperationID.String())

	req := api.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/uapi/acquiring/v1.0/payments_with_receipt", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	var sent struct {
		Data map[string]json.RawMessage `json:"Data"`
	}
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.JSONEq(t, `"300000092"`, string(sent.Data["customerCode"]))
	assert.JSONEq(t, `["sbp","card"]`, string(sent.Data["paymentMode"]))
	assert.Contains(t, sent.Data, "Client")
	assert.Contains(t, sent.Data, "Items")
	assert.NotContains(t, sent.Data, "redirectUrl")
}

func TestCreatePaymentOperation_UsesKnownCustomerCode(t *testing.T) {
	api := &fakeAPI{body: paymentBody}
	c, _ := newTestClient(t, api, func(cfg *client.Config) { cfg.CustomerCode = "300000092" })

	_, err := c.CreatePaymentOperation(context.Background(),
		domain.NewCreatePaymentPayload(10, "", "test"), domain.PaymentPathPayments)
	require.NoError(t, err)
	assert.Contains(t, string(api.last(t).Body), `"customerCode":"300000092"`)
}

func TestCreatePaymentOperation_MissingCustomerCode(t *testing.T) {
	api := &fakeAPI{body: paymentBody}
	c, _ := newTestClient(t, api)

	_, err := c.CreatePaymentOperation(context.Background(),
		domain.NewCreatePaymentPayload(10, "", "test"), domain.PaymentPathPayments)

	var cfgErr *domain.ErrConfig
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 0, api.count())
}

func TestCreatePaymentOperation_ValidationFailsBeforeSending(t *testing.T) {
	api := &fakeAPI{body: paymentBody}
	c, _ := newTestClient(t, api)

	payload := domain.NewCreatePaymentPayload(0, "300000092", "test")
	phone := "abc"
	payload.Client = &domain.ReceiptClient{Email: "buyer@example.com", Phone: &phone}

	_, err := c.CreatePaymentOperation(context.Background(), payload, domain.PaymentPathWithReceipt)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Equal(t, 0, api.count())
}

func TestCreatePaymentOperation_UnknownPath(t *testing.T) {
	api := &fakeAPI{body: paymentBody}
	c, _ := newTestClient(t, api)

	_, err := c.CreatePaymentOperation(context.Background(),
		domain.NewCreatePaymentPayload(10, "300000092", "test"), domain.PaymentPath("other"))

	assert.Equal(t, domain.KindConfig, domain.KindOf(err))
	assert.Equal(t, 0, api.count())
}

func TestPaymentOperationList_EncodesQuery(t *testing.T) {
	body := `{"Data": {"Operation": []}, "Links": {"self": "x"}, "Meta": {"totalPages": 0}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	query := domain.NewPaymentListQuery("300000092")
	query.FromDate = domain.NewDate(2024, time.January, 2)
	query.Status = domain.PaymentApproved
	query.PerPage = 50

	resp, err := c.PaymentOperationList(context.Background(), query)
	require.NoError(t, err)
	assert.Empty(t, resp.Data.Operation)

	req := api.last(t)
	assert.Equal(t, "/uapi/acquiring/v1.0/payments", req.Path)
	assert.Contains(t, req.Query, "customerCode=300000092")
	assert.Contains(t, req.Query, "fromDate=2024-01-02")
	assert.Contains(t, req.Query, "status=APPROVED")
	assert.Contains(t, req.Query, "perPage=50")
	assert.NotContains(t, req.Query, "toDate")
	assert.NotContains(t, req.Query, "page=0")
}

func TestCapturePayment(t *testing.T) {
	body := `{"Data": {"result": true}, "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	resp, err := c.CapturePayment(context.Background(), "op-1")
	require.NoError(t, err)
	assert.True(t, resp.Data.Result)
	assert.Equal(t, "/uapi/acquiring/v1.0/payments/op-1/capture", api.last(t).Path)
}

func TestRefundPaymentOperation(t *testing.T) {
	body := `{"Data": {"isRefund": true, "operationId": "beeac4a4-0ef6-4dc6-b4b5-4a6e31fc1b9c",
	  "amount": 100, "date": "2024-05-02", "orderId": "ord-1"},
	  "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	resp, err := c.RefundPaymentOperation(context.Background(), "op-1", domain.RefundPayload{Amount: 100})
	require.NoError(t, err)
	assert.True(t, resp.Data.IsRefund)
	assert.Equal(t, "2024-05-02", resp.Data.Date.String())

	req := api.last(t)
	assert.Equal(t, "/uapi/acquiring/v1.0/payments/op-1/refund", req.Path)
	assert.JSONEq(t, `{"Data":{"amount":100}}`, string(req.Body))
}

func TestGetPaymentRegistry(t *testing.T) {
	body := `{"Data": {"Registry": [{"purpose": "p", "status": "APPROVED", "amount": 10,
	  "operationId": "beeac4a4-0ef6-4dc6-b4b5-4a6e31fc1b9c", "time": "2024-05-01T10:00:00Z",
	  "number": 1, "commission": 0.3, "enrollmentAmount": 9.7}]},
	  "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	query := domain.NewPaymentRegistryQuery("300000092", "200000000001056", "", domain.NewDate(2024, time.May, 1))
	resp, err := c.GetPaymentRegistry(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, resp.Data.Registry, 1)
	assert.Equal(t, 9.7, resp.Data.Registry[0].EnrollmentAmount)

	req := api.last(t)
	assert.Equal(t, "/uapi/acquiring/v1.0/registry", req.Path)
	assert.Contains(t, req.Query, "merchantId=200000000001056")
	assert.Contains(t, req.Query, "date=2024-05-01")
	assert.NotContains(t, req.Query, "paymentId")
}

func TestGetPaymentRegistry_RequiresDate(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestClient(t, api)

	query := domain.NewPaymentRegistryQuery("300000092", "200000000001056", "", domain.Date{})
	_, err := c.GetPaymentRegistry(context.Background(), query)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "date", verrs[0].Field)
	assert.Equal(t, "required", verrs[0].Rule)
	assert.Equal(t, 0, api.count())
}

func TestGetRetailers_SendsCustomerCode(t *testing.T) {
	body := `{"Data": {"Retailer": []}, "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	_, err := c.GetRetailers(context.Background(), domain.RetailerQuery{CustomerCode: "300000092"})
	require.NoError(t, err)

	req := api.last(t)
	assert.Equal(t, "/uapi/acquiring/v1.0/retailers", req.Path)
	assert.Equal(t, "customerCode=300000092", req.Query)
}

func TestInitStatement_Envelope(t *testing.T) {
	body := `{"Data": {"Statement": [{"accountId": "acc1", "statementId": "st1", "status": "Created",
	  "startDateTime": "2024-01-01", "endDateTime": "2024-01-31",
	  "creationDateTime": "2024-02-01T10:00:00Z"}]},
	  "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	payload := domain.StatementPayload{
		AccountID:     "acc1",
		StartDateTime: domain.NewDate(2024, time.January, 1),
		EndDateTime:   domain.NewDate(2024, time.January, 31),
	}
	resp, err := c.InitStatement(context.Background(), payload)
	require.NoError(t, err)
	require.Len(t, resp.Data.Statement, 1)
	assert.Equal(t, domain.StatementCreated, resp.Data.Statement[0].Status)

	req := api.last(t)
	assert.Equal(t, "/uapi/open-banking/v1.0/statements", req.Path)
	assert.JSONEq(t,
		`{"Data":{"Statement":{"accountId":"acc1","startDateTime":"2024-01-01","endDateTime":"2024-01-31"}}}`,
		string(req.Body))
}

func TestWebhooks_RequireClientID(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestClient(t, api, func(cfg *client.Config) { cfg.ClientID = "" })
	ctx := context.Background()
	webhook := domain.Webhook{WebhooksList: []domain.WebhookType{domain.WebhookIncomingPayment}, URL: "https://example.com/hook"}

	calls := map[string]func() error{
		"create": func() error { _, err := c.CreateWebhook(ctx, webhook); return err },
		"edit":   func() error { _, err := c.EditWebhook(ctx, webhook); return err },
		"get":    func() error { _, err := c.GetWebhooks(ctx); return err },
		"delete": func() error { _, err := c.DeleteWebhook(ctx); return err },
		"test":   func() error { _, err := c.SendTestWebhook(ctx, domain.WebhookIncomingPayment); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, domain.KindConfig, domain.KindOf(call()))
		})
	}
	assert.Equal(t, 0, api.count())
}

func TestCreateWebhook_SendsUnwrappedBody(t *testing.T) {
	body := `{"Data": {"webhooksList": ["incomingPayment"], "url": "https://example.com/hook"},
	  "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	webhook := domain.Webhook{WebhooksList: []domain.WebhookType{domain.WebhookIncomingPayment}, URL: "https://example.com/hook"}
	resp, err := c.CreateWebhook(context.Background(), webhook)
	require.NoError(t, err)
	assert.Equal(t, webhook, resp.Data)

	req := api.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/uapi/webhook/v1.0/app-client-id", req.Path)
	assert.JSONEq(t, `{"webhooksList":["incomingPayment"],"url":"https://example.com/hook"}`, string(req.Body))

	_, err = c.EditWebhook(context.Background(), webhook)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, api.last(t).Method)
}

func TestCreateWebhook_InvalidURL(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestClient(t, api)

	_, err := c.CreateWebhook(context.Background(), domain.Webhook{
		WebhooksList: []domain.WebhookType{domain.WebhookIncomingPayment},
		URL:          "not a url",
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, 0, api.count())
}

func TestSendTestWebhook(t *testing.T) {
	body := `{"Data": {"result": true}, "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	_, err := c.SendTestWebhook(context.Background(), domain.WebhookAcquiringInternetPayment)
	require.NoError(t, err)

	req := api.last(t)
	assert.Equal(t, "/uapi/webhook/v1.0/app-client-id/test_send", req.Path)
	assert.JSONEq(t, `{"webhookType":"acquiringInternetPayment"}`, string(req.Body))
}

func TestDeleteWebhook(t *testing.T) {
	body := `{"Data": {"result": true}, "Links": {"self": "x"}, "Meta": {"totalPages": 1}}`
	api := &fakeAPI{body: body}
	c, _ := newTestClient(t, api)

	resp, err := c.DeleteWebhook(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Data.Result)
	assert.Equal(t, http.MethodDelete, api.last(t).Method)
}

func TestScopePolicy(t *testing.T) {
	api := &fakeAPI{body: accountsBody}
	c, _ := newTestClient(t, api, func(cfg *client.Config) {
		cfg.Scopes = []domain.Scope{domain.ScopeReadAccountsBasic}
	})

	_, err := c.GetAccountsList(context.Background())
	require.NoError(t, err)

	_, err = c.GetBalancesList(context.Background())
	var cfgErr *domain.ErrConfig
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "ReadBalances")
	assert.Equal(t, 1, api.count())
}

func TestSelectBusinessCustomerCode(t *testing.T) {
	business := func(code string) domain.Account {
		return domain.Account{CustomerCode: code, AccountType: domain.CustomerTypeBusiness}
	}
	personal := func(code string) domain.Account {
		return domain.Account{CustomerCode: code, AccountType: domain.CustomerTypePersonal}
	}

	testCases := []struct {
		name     string
		accounts []domain.Account
		want     string
		wantErr  string
	}{
		{name: "single", accounts: []domain.Account{business("300000092")}, want: "300000092"},
		{name: "duplicates collapse", accounts: []domain.Account{business("300000092"), business("300000092"), personal("1")}, want: "300000092"},
		{name: "none", accounts: []domain.Account{personal("100000001")}, wantErr: "no Business accounts"},
		{name: "empty", wantErr: "no Business accounts"},
		{name: "ambiguous", accounts: []domain.Account{business("300000093"), business("300000092")}, wantErr: "multiple Business accounts with different customer codes (300000092, 300000093)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := client.SelectBusinessCustomerCode(tc.accounts)
			if tc.wantErr != "" {
				var cfgErr *domain.ErrConfig
				require.ErrorAs(t, err, &cfgErr)
				assert.Contains(t, cfgErr.Message, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveCustomerCode_SharesOneRequest(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(accountsBody))
	}))

	var wg sync.WaitGroup
	codes := make([]string, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code, err := c.ResolveCustomerCode(context.Background())
			assert.NoError(t, err)
			codes[i] = code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, "300000092", code)
	}
	assert.Equal(t, int32(1), hits.Load())

	known, ok := c.CustomerCode()
	assert.True(t, ok)
	assert.Equal(t, "300000092", known)
}

func TestResolveCustomerCode_CancelledCallerDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
		}
		<-release
		_, _ = w.Write([]byte(accountsBody))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.ResolveCustomerCode(ctx)
		firstErr <- err
	}()
	<-started

	type result struct {
		code string
		err  error
	}
	second := make(chan result, 1)
	go func() {
		code, err := c.ResolveCustomerCode(context.Background())
		second <- result{code, err}
	}()
	// Give the second caller time to join the in-flight resolution.
	time.Sleep(20 * time.Millisecond)

	cancel()
	err := <-firstErr
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "300000092", got.code)
	assert.Equal(t, int32(1), hits.Load())

	known, ok := c.CustomerCode()
	assert.True(t, ok)
	assert.Equal(t, "300000092", known)
}

func TestResolveCustomerCode_FailureNotCached(t *testing.T) {
	api := &fakeAPI{status: http.StatusInternalServerError, body: "down"}
	c, _ := newTestClient(t, api)

	_, err := c.ResolveCustomerCode(context.Background())
	assert.Equal(t, domain.KindServer, domain.KindOf(err))

	api.mu.Lock()
	api.status, api.body = http.StatusOK, accountsBody
	api.mu.Unlock()

	code, err := c.ResolveCustomerCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "300000092", code)
	assert.Equal(t, 2, api.count())
}

func TestResolveCustomerCode_ConfiguredSkipsRequest(t *testing.T) {
	api := &fakeAPI{body: accountsBody}
	c, _ := newTestClient(t, api, func(cfg *client.Config) { cfg.CustomerCode = "300000099" })

	code, err := c.ResolveCustomerCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "300000099", code)
	assert.Equal(t, 0, api.count())
}
