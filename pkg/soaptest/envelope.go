package soaptest

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

const soapContentType = "application/soap+xml; charset=utf-8"

// parseRequest takes an incoming envelope apart: the bare operation
// name ("Auth" for <AuthRequest>), the request content and the auth
// token of the context header, empty when anonymous.
func parseRequest(data string) (name string, content soap.Params, token string, err error) {
	doc, err := soap.DecodeString(data)
	if err != nil {
		return "", nil, "", err
	}
	envelope, ok := doc["Envelope"].(soap.Params)
	if !ok {
		return "", nil, "", errors.New("not a SOAP envelope")
	}

	if header, ok := envelope["Header"].(soap.Params); ok {
		if ctx, ok := header["context"].(soap.Params); ok {
			token = soap.Content(ctx["authToken"])
		}
	}

	body, ok := envelope["Body"].(soap.Params)
	if !ok {
		return "", nil, "", errors.New("SOAP envelope carries no Body")
	}
	for tag, v := range body {
		if !strings.HasSuffix(tag, "Request") {
			continue
		}
		content, _ = v.(soap.Params)
		return strings.TrimSuffix(tag, "Request"), content, token, nil
	}
	return "", nil, "", errors.New("no request element in Body")
}

// writeResponse serializes content as <nameResponse> in a fresh
// envelope.
func writeResponse(c *gin.Context, name string, content soap.Params) {
	payload, err := soap.BuildEnvelope(name+"Response", soap.HeaderNS, content, "")
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, soapContentType, payload)
}

// writeFault answers with a SOAP fault the way Zimbra shapes it, HTTP
// 500 included.
func writeFault(c *gin.Context, code, reason string) {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	buf.WriteString(`<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"><soap:Body>`)
	buf.WriteString(`<soap:Fault><soap:Reason><soap:Text>`)
	_ = xml.EscapeText(buf, []byte(reason))
	buf.WriteString(`</soap:Text></soap:Reason><soap:Detail><Error xmlns="urn:zimbra"><Code>`)
	_ = xml.EscapeText(buf, []byte(code))
	buf.WriteString(`</Code><Trace>fixture</Trace></Error></soap:Detail></soap:Fault>`)
	buf.WriteString(`</soap:Body></soap:Envelope>`)
	c.Data(http.StatusInternalServerError, soapContentType, buf.Bytes())
}
