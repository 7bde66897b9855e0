package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	operalink "github.com/operasoftware/go-operalink"
	"github.com/operasoftware/go-operalink/rest/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RequestTestSuite struct {
	suite.Suite
	ctx     context.Context
	server  *httptest.Server
	comm    *communicatorImpl
	handler http.HandlerFunc
}

func TestRequestTestSuite(t *testing.T) {
	suite.Run(t, new(RequestTestSuite))
}

func (s *RequestTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.handler = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.handler == nil {
			http.Error(w, "no handler installed", http.StatusTeapot)
			return
		}
		s.handler(w, r)
	}))
	s.comm = NewCommunicator(s.server.URL).(*communicatorImpl)
}

func (s *RequestTestSuite) TearDownTest() {
	s.comm.Close()
	s.server.Close()
}

func (s *RequestTestSuite) respond(body string) {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}
}

func (s *RequestTestSuite) TestResourcePath() {
	s.Equal("p/bookmark/", ResourcePath("p", "bookmark", ""))
	s.Equal("p/bookmark/5/", ResourcePath("p", "bookmark", "5"))
	s.Equal("p/note/a%2Fb/", ResourcePath("p", "note", "a/b"))
}

func (s *RequestTestSuite) TestGetPathChildren() {
	s.Equal(s.server.URL+"/bookmark/3/children", s.comm.getPath(requestInfo{datatype: "bookmark", itemID: "3", children: true}))
	s.Equal(s.server.URL+"/speeddial/children", s.comm.getPath(requestInfo{datatype: "speeddial", children: true}))
}

func (s *RequestTestSuite) TestErrorMapping() {
	for status, check := range map[int]func(error) bool{
		http.StatusBadRequest:          operalink.IsBadRequest,
		http.StatusUnauthorized:        operalink.IsAccessDenied,
		http.StatusNotFound:            operalink.IsNotFound,
		http.StatusInternalServerError: operalink.IsServiceError,
	} {
		status := status
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		}
		_, err := s.comm.GetResource(s.ctx, "bookmark", "999")
		s.Error(err)
		s.True(check(err), "status %d", status)

		linkErr := &operalink.LinkError{}
		s.Require().True(errors.As(err, &linkErr))
		s.Equal(status, linkErr.StatusCode)
	}
}

func (s *RequestTestSuite) TestServerErrorCarriesBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}
	_, err := s.comm.GetResource(s.ctx, "note", "1")
	s.Require().Error(err)

	linkErr := &operalink.LinkError{}
	s.Require().True(errors.As(err, &linkErr))
	s.Equal(http.StatusBadGateway, linkErr.StatusCode)
	s.Contains(linkErr.Content, "upstream exploded")
}

func (s *RequestTestSuite) TestTransportFailureIsSynthetic503() {
	s.server.Close()
	_, err := s.comm.GetResource(s.ctx, "bookmark", "1")
	s.Require().Error(err)
	s.True(operalink.IsServiceError(err))

	linkErr := &operalink.LinkError{}
	s.Require().True(errors.As(err, &linkErr))
	s.Equal(http.StatusServiceUnavailable, linkErr.StatusCode)
}

func (s *RequestTestSuite) TestGetResource() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodGet, r.Method)
		s.Equal("/bookmark/1/", r.URL.Path)
		s.Equal(operalink.APIOutputJSON, r.URL.Query().Get(operalink.APIOutputParam))
		fmt.Fprint(w, `[{"id":"1","item_type":"bookmark","properties":{"title":"Example","bogus":"dropped"}}]`)
	}

	e, err := s.comm.GetResource(s.ctx, "bookmark", "1")
	s.Require().NoError(err)

	bm, ok := e.(*model.Bookmark)
	s.Require().True(ok)
	s.Equal("1", bm.ID())
	s.Equal(map[string]string{"title": "Example"}, bm.Properties())
}

func (s *RequestTestSuite) TestGetResourceNotFoundBuildsNoEntity() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}
	e, err := s.comm.GetResource(s.ctx, "bookmark", "999")
	s.Nil(e)
	s.True(operalink.IsNotFound(err))
}

func (s *RequestTestSuite) TestGetResourceRejectsMultiElementEnvelope() {
	s.respond(`[{"id":"1","item_type":"bookmark"},{"id":"2","item_type":"bookmark"}]`)
	_, err := s.comm.GetResource(s.ctx, "bookmark", "1")
	s.Error(err)
}

func (s *RequestTestSuite) TestChildrenEmptyResponses() {
	// empty JSON list
	s.respond(`[]`)
	children, err := s.comm.ResourceChildren(s.ctx, "bookmark", "", true)
	s.Require().NoError(err)
	s.NotNil(children)
	s.Empty(children)

	// no body at all
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	children, err = s.comm.ResourceChildren(s.ctx, "bookmark", "3", true)
	s.Require().NoError(err)
	s.NotNil(children)
	s.Empty(children)
}

func (s *RequestTestSuite) TestChildrenPreservesServerOrder() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/bookmark/3/children", r.URL.Path)
		fmt.Fprint(w, `[
			{"id":"10","item_type":"bookmark_folder","properties":{"title":"sub"}},
			{"id":"11","item_type":"bookmark_separator","properties":{}},
			{"id":"12","item_type":"bookmark","properties":{"title":"last"}}
		]`)
	}

	children, err := s.comm.ResourceChildren(s.ctx, "bookmark", "3", true)
	s.Require().NoError(err)
	s.Require().Len(children, 3)
	s.IsType(&model.BookmarkFolder{}, children[0])
	s.IsType(&model.BookmarkSeparator{}, children[1])
	s.IsType(&model.Bookmark{}, children[2])
	s.Equal("10", children[0].ID())
	s.Equal("12", children[2].ID())
}

func (s *RequestTestSuite) TestChildrenUnknownItemTypeFailsWholeList() {
	s.respond(`[
		{"id":"10","item_type":"bookmark","properties":{}},
		{"id":"11","item_type":"unknown_widget","properties":{}}
	]`)

	children, err := s.comm.ResourceChildren(s.ctx, "bookmark", "", true)
	s.Nil(children)
	s.True(model.IsUnknownItemType(err))
}

func (s *RequestTestSuite) TestCreateBookmarkScenario() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/bookmark/", r.URL.Path)
		s.Require().NoError(r.ParseForm())
		s.Equal(operalink.MethodCreate, r.PostForm.Get(operalink.APIMethodParam))
		s.Equal(operalink.APIOutputJSON, r.PostForm.Get(operalink.APIOutputParam))
		s.Equal("bookmark", r.PostForm.Get("item_type"))
		s.Equal("Example", r.PostForm.Get("title"))
		s.Equal("http://example.com", r.PostForm.Get("uri"))
		s.Equal(operalink.ContentTypeValue, r.Header.Get(operalink.ContentTypeHeader))
		fmt.Fprint(w, `[{"id":"42","item_type":"bookmark","properties":{"title":"Example","uri":"http://example.com","created":"2010-04-23T12:01:02Z"}}]`)
	}

	params := map[string]string{
		"item_type": "bookmark",
		"title":     "Example",
		"uri":       "http://example.com",
	}
	e, err := s.comm.CreateResource(s.ctx, "bookmark", "", params)
	s.Require().NoError(err)

	bm := e.(*model.Bookmark)
	s.Equal("42", bm.ID())
	s.NotNil(bm.Created)
}

func (s *RequestTestSuite) TestMoveScenario() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/bookmark/5/", r.URL.Path)
		s.Require().NoError(r.ParseForm())
		s.Equal(operalink.MethodMove, r.PostForm.Get(operalink.APIMethodParam))
		s.Equal("3", r.PostForm.Get("reference_item"))
		s.Equal(operalink.PositionInto, r.PostForm.Get("relative_position"))
		fmt.Fprint(w, `[{"id":"5","item_type":"bookmark","properties":{"title":"moved"}}]`)
	}

	props, err := s.comm.MoveResource(s.ctx, "bookmark", "5", operalink.PositionInto, "3")
	s.Require().NoError(err)
	s.Equal("moved", props["title"])
}

func (s *RequestTestSuite) TestMoveWithoutReferenceKeepsPosition() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(r.ParseForm())
		_, present := r.PostForm["reference_item"]
		s.True(present)
		s.Equal("", r.PostForm.Get("reference_item"))
		s.Equal(operalink.PositionInto, r.PostForm.Get("relative_position"))
		w.WriteHeader(http.StatusNoContent)
	}

	props, err := s.comm.MoveResource(s.ctx, "bookmark", "5", operalink.PositionInto, "")
	s.NoError(err)
	s.Nil(props)
}

func (s *RequestTestSuite) TestMoveRejectsInvalidPosition() {
	_, err := s.comm.MoveResource(s.ctx, "bookmark", "5", "sideways", "3")
	s.Error(err)
}

func (s *RequestTestSuite) TestUpdateWithoutPayload() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	props, err := s.comm.UpdateResource(s.ctx, "note", "12", map[string]string{"content": "x"})
	s.NoError(err)
	s.Nil(props)
}

func (s *RequestTestSuite) TestDeletePropagatesNotFound() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(r.ParseForm())
		s.Equal(operalink.MethodDelete, r.PostForm.Get(operalink.APIMethodParam))
		http.Error(w, "gone", http.StatusNotFound)
	}
	err := s.comm.DeleteResource(s.ctx, "bookmark", "999")
	s.True(operalink.IsNotFound(err))
}

func (s *RequestTestSuite) TestTrashUsesTrashVerb() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(r.ParseForm())
		s.Equal(operalink.MethodTrash, r.PostForm.Get(operalink.APIMethodParam))
		w.WriteHeader(http.StatusNoContent)
	}
	s.NoError(s.comm.TrashResource(s.ctx, "note", "12"))
}

func (s *RequestTestSuite) TestAddBindsAndHydrates() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/bookmark/", r.URL.Path)
		fmt.Fprint(w, `[{"id":"42","item_type":"bookmark","properties":{"title":"Example"}}]`)
	}

	bm := &model.Bookmark{}
	title := "Example"
	bm.Title = &title
	s.Require().NoError(s.comm.Add(s.ctx, bm))
	s.Equal("42", bm.ID())

	// the entity is now bound to this communicator and can dispatch its
	// own operations
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/bookmark/42/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}
	s.NoError(model.Delete(s.ctx, bm))
}

func (s *RequestTestSuite) TestAddToFolder() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/note/3/", r.URL.Path)
		fmt.Fprint(w, `[{"id":"9","item_type":"note","properties":{"content":"hi"}}]`)
	}

	folder, err := model.Hydrate(s.comm, model.Item{ID: "3", ItemType: model.ItemTypeNoteFolder})
	s.Require().NoError(err)

	content := "hi"
	note := &model.Note{Content: &content}
	s.Require().NoError(s.comm.AddToFolder(s.ctx, note, folder.(*model.NoteFolder)))
	s.Equal("9", note.ID())
}
