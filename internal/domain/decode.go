package domain

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type decodeFunc func(data gjson.Result) (Record, error)

// decoders is the dispatch table from Kind to variant decoder. Adding a kind
// means one constant in kind.go, one entry here and one decoder below.
var decoders map[Kind]decodeFunc

func init() {
	decoders = map[Kind]decodeFunc{
		KindListing:       decodeListingData,
		KindComment:       decodeCommentData,
		KindAccount:       placeholder(AccountData{}),
		KindLink:          decodeLinkData,
		KindMessage:       placeholder(MessageData{}),
		KindSubreddit:     placeholder(SubredditData{}),
		KindAward:         placeholder(AwardData{}),
		KindMore:          placeholder(MoreData{}),
		KindPromoCampaign: placeholder(PromoCampaignData{}),
	}
}

// DecodeOne decodes a {"kind": string, "data": object} value.
func DecodeOne(obj gjson.Result) (Listing, error) {
	if !obj.IsObject() {
		return Listing{}, errors.Wrap(ErrInvalidDictionaryContents, "not an object")
	}

	kindField := obj.Get("kind")
	if kindField.Type != gjson.String {
		return Listing{}, errors.Wrap(ErrInvalidDictionaryContents, "missing kind")
	}
	kind, ok := ParseKind(kindField.Str)
	if !ok {
		return Listing{}, errors.Wrapf(ErrInvalidDictionaryContents, "unknown kind %q", kindField.Str)
	}

	data := obj.Get("data")
	if !data.IsObject() {
		return Listing{}, errors.Wrapf(ErrInvalidDictionaryContents, "kind %s: missing data", kind)
	}

	payload, err := decoders[kind](data)
	if err != nil {
		return Listing{}, errors.Wrapf(err, "kind %s", kind)
	}
	return NewListing(payload), nil
}

// DecodeMany decodes every element of a JSON array in order. It stops at the
// first failing element and returns no partial result.
func DecodeMany(arr gjson.Result) ([]Listing, error) {
	if !arr.IsArray() {
		return nil, errors.Wrap(ErrInvalidArrayContents, "not an array")
	}

	elements := arr.Array()
	out := make([]Listing, 0, len(elements))
	for i, el := range elements {
		if !el.IsObject() {
			return nil, errors.Wrapf(ErrInvalidArrayContents, "element %d", i)
		}
		l, err := DecodeOne(el)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, l)
	}
	return out, nil
}

// DecodeOneFromBytes parses raw bytes that must hold a top-level object.
func DecodeOneFromBytes(b []byte) (Listing, error) {
	if !gjson.ValidBytes(b) {
		return Listing{}, ErrInvalidJSONData
	}
	obj := gjson.ParseBytes(b)
	if !obj.IsObject() {
		return Listing{}, errors.Wrap(ErrInvalidJSONData, "expected object")
	}
	return DecodeOne(obj)
}

// DecodeManyFromBytes parses raw bytes that must hold a top-level array.
func DecodeManyFromBytes(b []byte) ([]Listing, error) {
	if !gjson.ValidBytes(b) {
		return nil, ErrInvalidJSONData
	}
	arr := gjson.ParseBytes(b)
	if !arr.IsArray() {
		return nil, errors.Wrap(ErrInvalidJSONData, "expected array")
	}
	return DecodeMany(arr)
}

// decodeListingData never fails. A children array that does not decode is
// dropped so a corrupt nested page leaves the rest of the page intact.
func decodeListingData(data gjson.Result) (Record, error) {
	d := ListingData{
		Modhash: optionalString(data.Get("modhash")),
		After:   optionalString(data.Get("after")),
		Before:  optionalString(data.Get("before")),
	}

	if children := data.Get("children"); children.IsArray() {
		if decoded, err := DecodeMany(children); err == nil {
			d.Children = decoded
		}
	}
	return d, nil
}

func decodeLinkData(data gjson.Result) (Record, error) {
	return LinkData{
		Title:       str(data, "title"),
		Subreddit:   str(data, "subreddit"),
		ID:          str(data, "id"),
		Thumbnail:   str(data, "thumbnail"),
		URL:         str(data, "url"),
		Permalink:   str(data, "permalink"),
		Author:      str(data, "author"),
		Ups:         integer(data, "ups"),
		Downs:       integer(data, "downs"),
		Score:       integer(data, "score"),
		IsSelf:      boolean(data, "is_self"),
		NumComments: integer(data, "num_comments"),
	}, nil
}

// decodeCommentData is lenient on scalars. Replies are strict: an object that
// is present but not a valid listing fails the comment. Reddit sends "" when
// there are no replies, which is treated as absent.
func decodeCommentData(data gjson.Result) (Record, error) {
	c := CommentData{
		Body:     str(data, "body"),
		Author:   str(data, "author"),
		BodyHTML: str(data, "body_html"),
		Score:    integer(data, "score"),
		Ups:      integer(data, "ups"),
		Downs:    integer(data, "downs"),
	}

	if replies := data.Get("replies"); replies.IsObject() {
		l, err := DecodeOne(replies)
		if err != nil {
			return nil, errors.Wrap(err, "replies")
		}
		c.Replies = &l
	}
	return c, nil
}

func placeholder(r Record) decodeFunc {
	return func(gjson.Result) (Record, error) {
		return r, nil
	}
}

func optionalString(r gjson.Result) *string {
	if r.Type != gjson.String {
		return nil
	}
	s := r.Str
	return &s
}

func str(obj gjson.Result, key string) string {
	if r := obj.Get(key); r.Type == gjson.String {
		return r.Str
	}
	return ""
}

func integer(obj gjson.Result, key string) int {
	if r := obj.Get(key); r.Type == gjson.Number {
		return int(r.Int())
	}
	return 0
}

func boolean(obj gjson.Result, key string) bool {
	return obj.Get(key).Type == gjson.True
}
