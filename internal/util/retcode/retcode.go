package retcode

// Business return codes carried in the response envelope. Negative values
// are errors; the HTTP status stays 200 except for transport-level failures.
const (
	SUCCESS         = 1
	INVALID         = -1
	DB_SAVE_ERROR   = -2
	DB_READ_ERROR   = -3
	LOGIN_ERROR     = -7
	NOT_EXISTS      = -8
	JSON_PARSE_FAIL = -9
	EMPTY_PARAMS    = -12
	AUTH_ERROR      = -14
	TOKEN_TIMEOUT   = -996
	UNKNOWN         = -998
)

type CodeInfo struct {
	Code    int
	Message string
}

func All() map[string]CodeInfo {
	return map[string]CodeInfo{
		"SUCCESS":         {SUCCESS, "success"},
		"INVALID":         {INVALID, "invalid operation"},
		"DB_SAVE_ERROR":   {DB_SAVE_ERROR, "failed to save record"},
		"DB_READ_ERROR":   {DB_READ_ERROR, "failed to read record"},
		"LOGIN_ERROR":     {LOGIN_ERROR, "login failed"},
		"NOT_EXISTS":      {NOT_EXISTS, "not found"},
		"JSON_PARSE_FAIL": {JSON_PARSE_FAIL, "malformed request body"},
		"EMPTY_PARAMS":    {EMPTY_PARAMS, "missing required parameters"},
		"AUTH_ERROR":      {AUTH_ERROR, "authentication failed"},
		"TOKEN_TIMEOUT":   {TOKEN_TIMEOUT, "access token expired"},
		"UNKNOWN":         {UNKNOWN, "unknown error"},
	}
}
