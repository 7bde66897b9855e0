package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/evergreen-ci/utility"
	operalink "github.com/operasoftware/go-operalink"
)

// communicatorImpl implements Communicator and makes requests against the
// Link REST endpoints.
type communicatorImpl struct {
	urlPrefix  string
	httpClient *http.Client
	pooled     bool
	timeout    time.Duration
}

// NewCommunicator returns a Communicator for the API server at urlPrefix;
// an empty prefix selects the production Opera Link endpoint. The returned
// communicator uses an unauthenticated pooled client until SetHTTPClient
// installs a signing one.
func NewCommunicator(urlPrefix string) Communicator {
	if urlPrefix == "" {
		urlPrefix = operalink.DefaultURLPrefix
	}
	return &communicatorImpl{
		urlPrefix:  strings.TrimSuffix(urlPrefix, "/"),
		httpClient: utility.GetHTTPClient(),
		pooled:     true,
	}
}

func (c *communicatorImpl) SetHTTPClient(hc *http.Client) {
	c.releaseClient()
	c.httpClient = hc
}

func (c *communicatorImpl) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

func (c *communicatorImpl) Close() {
	c.releaseClient()
	c.httpClient = nil
}

func (c *communicatorImpl) releaseClient() {
	if c.pooled {
		utility.PutHTTPClient(c.httpClient)
		c.pooled = false
	}
}
