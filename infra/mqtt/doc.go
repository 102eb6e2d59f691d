// Package mqtt exposes the calculator over an MQTT broker. Clients publish a
// request carrying a request_id and the calculator inputs; the Responder
// replies on a per-request topic.
package mqtt
