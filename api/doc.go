// Package api provides the authenticated transport for the Steadysun API.
//
// Steadysun serves PV production and weather forecasts and stores the PV
// system configurations they are computed for. This package handles the
// request plumbing shared by the forecast and pvsystem packages.
//
// # Usage
//
// Create a client from an explicit token, or from the environment:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := api.NewClientFromEnv(logger, api.WithTimeout(10*time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	systems, err := client.GetList(ctx, "pvsystem/", nil, 100, true)
//
// # Responses
//
// Every response goes through HandleResponse:
//
//   - 2xx: the body decoded as an Object. An unparsable body yields an
//     Object whose "message" describes the parse failure. A body that is
//     valid JSON but not an object, such as a list, is kept under ValueKey.
//   - 204: Object{"message": DeletedMessage}.
//   - 400, 401, 403, 404, 429, 500, 502: the matching typed error.
//   - anything else: *APIError with the raw status and body.
//
// # Error Handling
//
// All status errors unwrap to *APIError:
//
//	var apiErr *api.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Println(apiErr.StatusCode)
//	}
//
//	var notFound *api.NotFoundError
//	if errors.As(err, &notFound) {
//		fmt.Println("missing:", notFound.URL)
//	}
//
// Requests are made once. There is no retry, and network failures come back
// wrapped as returned by net/http.
package api
