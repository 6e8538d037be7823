package spo

import (
	"context"
	"net/url"

	"github.com/praetorian-inc/m365/pkg/request"
	"github.com/praetorian-inc/m365/pkg/session"
)

// Poster is the part of the REST client the SharePoint commands need.
type Poster interface {
	Post(ctx context.Context, url string, headers request.Headers, body any, out any) error
}

var noMetadata = request.Headers{
	"accept":       request.AcceptNoMetadata,
	"content-type": request.AcceptNoMetadata,
}

// clientFor returns a client with tokens for the SharePoint host of siteURL.
func clientFor(sess *session.Session, siteURL string) (Poster, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return nil, err
	}
	return sess.Client(u.Scheme + "://" + u.Host), nil
}
