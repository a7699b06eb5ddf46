package soap

import (
	"bytes"
	"encoding/xml"

	"github.com/pkg/errors"
)

const (
	envelopeNS = "http://www.w3.org/2003/05/soap-envelope"

	// HeaderNS is the namespace of the context header carrying the
	// auth token.
	HeaderNS = "urn:zimbra"
)

// BuildEnvelope serializes one request element into a complete SOAP 1.2
// envelope. When authToken is non-empty it is carried in the urn:zimbra
// context header, the way every authenticated Zimbra call expects.
func BuildEnvelope(reqName, namespace string, content Params, authToken string) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	buf.WriteString(`<soap:Envelope xmlns:soap="` + envelopeNS + `">`)
	buf.WriteString(`<soap:Header><context xmlns="` + HeaderNS + `">`)
	buf.WriteString(`<format type="xml"/>`)
	if authToken != "" {
		if err := EncodeElement(buf, "authToken", Params{"_content": authToken}); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`</context></soap:Header><soap:Body>`)

	elem := Params{"xmlns": namespace}
	for k, v := range content {
		elem[k] = v
	}
	if err := EncodeElement(buf, reqName, elem); err != nil {
		return nil, errors.Wrapf(err, "cannot serialize %s", reqName)
	}

	buf.WriteString(`</soap:Body></soap:Envelope>`)
	return buf.Bytes(), nil
}

// ParseEnvelope decodes a response envelope and returns the Body
// element, a map from response tag to element. A SOAP fault in the body
// is returned as a *ServerError.
func ParseEnvelope(data []byte) (Params, error) {
	doc, err := DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	var envelope Params
	for tag, v := range doc {
		if tag != "Envelope" {
			return nil, errors.Errorf("expected a SOAP Envelope, got <%s>", tag)
		}
		envelope, _ = v.(Params)
	}
	body, ok := envelope["Body"].(Params)
	if !ok {
		return nil, errors.New("SOAP envelope carries no Body")
	}

	if fault, ok := body["Fault"].(Params); ok {
		return body, faultError(fault)
	}
	return body, nil
}

// faultError maps the fault structure to a typed error:
//
//	<soap:Fault>
//	  <soap:Reason><soap:Text>authentication failed...</soap:Text></soap:Reason>
//	  <soap:Detail>
//	    <Error xmlns="urn:zimbra">
//	      <Code>account.AUTH_FAILED</Code>
//	      <Trace>qtp...</Trace>
//	    </Error>
//	  </soap:Detail>
//	</soap:Fault>
func faultError(fault Params) *ServerError {
	serr := &ServerError{}
	if reason, ok := fault["Reason"].(Params); ok {
		serr.Reason = Content(reason["Text"])
	}
	if detail, ok := fault["Detail"].(Params); ok {
		if zerr, ok := detail["Error"].(Params); ok {
			serr.Code = Content(zerr["Code"])
			serr.Trace = Content(zerr["Trace"])
		}
	}
	return serr
}
