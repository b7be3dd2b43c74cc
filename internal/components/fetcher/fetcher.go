package fetcher

import (
	"context"
	"fmt"
	"hansard-scraper/internal/components/assert"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/lib/restyutil"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("internal/components/fetcher")

// Fetcher returns the body of the page at a url.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Func adapts an ordinary function into a Fetcher.
type Func func(ctx context.Context, url string) (string, error)

func (f Func) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	// defaults to 30 seconds
	Timeout time.Duration
	// defaults to DefaultUserAgent
	UserAgent string
	// maximum requests per second, 0 means unlimited
	RateLimit float64
	// wraps the transport with a cloudflare bypass
	CloudflareBypass bool
	// if not empty, every request and response is written to a file in this directory
	DumpDirectory string
}

// RestyFetcher is a Fetcher backed by a resty client, it never retries.
type RestyFetcher struct {
	http *resty.Client
	tel  telemetry.API
}

func NewRestyFetcher(options Options, tel telemetry.API) (RestyFetcher, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("fetcher", tel)

	if options.Timeout <= 0 {
		options.Timeout = time.Second * 30
	}
	if options.UserAgent == "" {
		options.UserAgent = DefaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(options.Timeout)
	client.SetHeader("user-agent", options.UserAgent)
	client.SetRetryCount(0)

	if options.CloudflareBypass {
		transport := client.GetClient().Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(transport)
	}

	if options.RateLimit > 0 {
		// max burst >= the rate just means that no requests will be dropped
		burst := int(options.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(options.RateLimit), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, tel)

	var output restyutil.InstrumentOutput
	if options.DumpDirectory != "" {
		fsOutput, err := restyutil.NewFilesystemOutput(options.DumpDirectory)
		if err != nil {
			return RestyFetcher{}, err
		}
		output = fsOutput
	}
	restyutil.InstrumentClient(client, tracer, output)

	return RestyFetcher{
		http: client,
		tel:  tel,
	}, nil
}

func (f RestyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		f.tel.ReportDebug("request failed", url, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("%w: GET %s: %s", hansard.ErrTransport, url, err.Error())
	}
	if res.IsError() {
		f.tel.ReportDebug("non-success response", url, res.StatusCode())
		span.SetStatus(codes.Error, res.Status())
		return "", fmt.Errorf("%w: GET %s: status %s", hansard.ErrTransport, url, res.Status())
	}
	return res.String(), nil
}
