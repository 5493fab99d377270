package entity

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// decodeDocument maps raw document data onto a tagged entity struct. Numbers may arrive as
// int64 (Firestore) or float64 (JSON), timestamps as time.Time or RFC 3339 strings.
func decodeDocument(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "firestore",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrap(decoder.Decode(data), "decode document")
}

// DecodeListing converts raw document data into a Listing.
func DecodeListing(key string, data map[string]any) (*Listing, error) {
	listing := &Listing{}
	if err := decodeDocument(data, listing); err != nil {
		return nil, errors.Wrapf(err, "listing %s", key)
	}
	listing.Key = key

	return listing, nil
}

// DecodeAccount converts raw document data into an Account.
func DecodeAccount(key string, data map[string]any) (*Account, error) {
	account := &Account{}
	if err := decodeDocument(data, account); err != nil {
		return nil, errors.Wrapf(err, "account %s", key)
	}
	account.Key = key

	return account, nil
}
