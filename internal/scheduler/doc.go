// Package scheduler forwards the room catalog to the external
// light-scheduling service and hands its answer back unchanged.
//
// The service replies with {rawRDF, lightToggle}. The forwarder relays
// the body verbatim; Summary only decodes lightToggle for logging.
package scheduler
