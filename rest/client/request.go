package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mongodb/grip"
	operalink "github.com/operasoftware/go-operalink"
	"github.com/operasoftware/go-operalink/rest/model"
	"github.com/operasoftware/go-operalink/util"
	"github.com/pkg/errors"
)

// requestInfo holds metadata about one request to a datatype endpoint.
type requestInfo struct {
	datatype string
	itemID   string
	children bool
}

// ResourcePath is the REST path for one item of a datatype, or for the
// datatype's root collection when itemID is empty.
func ResourcePath(prefix, datatype, itemID string) string {
	path := fmt.Sprintf("%s/%s/", prefix, datatype)
	if itemID != "" {
		path += url.PathEscape(itemID) + "/"
	}
	return path
}

func (c *communicatorImpl) getPath(info requestInfo) string {
	path := ResourcePath(c.urlPrefix, info.datatype, info.itemID)
	if info.children {
		path += "children"
	}
	return path
}

// get performs a read request and decodes the response envelope. A nil
// result with a nil error means the server sent no payload.
func (c *communicatorImpl) get(ctx context.Context, info requestInfo) ([]model.Item, error) {
	query := url.Values{}
	query.Set(operalink.APIOutputParam, operalink.APIOutputJSON)
	u := c.getPath(info) + "?" + query.Encode()

	r, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	return c.roundTrip(ctx, r)
}

// post performs a mutating request: api_method and params travel in a
// form-urlencoded body.
func (c *communicatorImpl) post(ctx context.Context, info requestInfo, apiMethod string, params map[string]string) ([]model.Item, error) {
	form := url.Values{}
	form.Set(operalink.APIOutputParam, operalink.APIOutputJSON)
	form.Set(operalink.APIMethodParam, apiMethod)
	for key, value := range params {
		form.Set(key, value)
	}

	r, err := http.NewRequest(http.MethodPost, c.getPath(info), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	r.Header.Set(operalink.ContentTypeHeader, operalink.ContentTypeValue)
	return c.roundTrip(ctx, r)
}

func (c *communicatorImpl) roundTrip(ctx context.Context, r *http.Request) ([]model.Item, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	r = r.WithContext(ctx)

	grip.Debugf("link api request: %s %s", r.Method, r.URL.Path)
	resp, err := c.httpClient.Do(r)
	if err != nil {
		// transport failures surface as a synthetic 503 so callers see
		// one error shape everywhere
		return nil, errors.WithStack(operalink.NewServiceUnavailableError(err))
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		grip.Debugf("link api response: %d from %s %s", resp.StatusCode, r.Method, r.URL.Path)
		return nil, errors.WithStack(operalink.NewLinkError(resp.StatusCode, http.StatusText(resp.StatusCode), string(body)))
	}

	// a 204 or empty body leaves items nil, which is a valid success with
	// no payload; a JSON [] decodes to an empty non-nil slice
	var items []model.Item
	if err := util.ReadJSONInto(resp.Body, &items); err != nil {
		return nil, errors.Wrap(err, "decoding response envelope")
	}
	return items, nil
}
