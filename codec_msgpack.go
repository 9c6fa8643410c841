package jqlb

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// MarshalQueryMsgpack encodes q as a MessagePack query document with the same
// layout as MarshalQueryJSON.
func MarshalQueryMsgpack(q Query) ([]byte, error) {
	doc, err := queryToDoc(q)
	if err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode MessagePack")
	}
	return data, nil
}

// UnmarshalQueryMsgpack decodes a MessagePack query document.
func UnmarshalQueryMsgpack(data []byte) (Query, error) {
	return DecodeQueryMsgpack(data, nil)
}

// DecodeQueryMsgpack is UnmarshalQueryMsgpack with an explicit builder configuration.
func DecodeQueryMsgpack(data []byte, cfg *Config) (Query, error) {
	if len(data) == 0 {
		return Query{}, malformed("empty MessagePack data")
	}
	var doc queryDoc
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return Query{}, malformed("failed to decode MessagePack: %v", err)
	}
	return docToQuery(doc, cfg)
}
