package parser

import json "github.com/goccy/go-json"

// jsonMarshal is the encoder used by the custom marshalers of this package.
var jsonMarshal = json.Marshal
