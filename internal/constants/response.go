package constants

// Standard Response Field Keys
const (
	ResponseFieldMessage     = "message"
	ResponseFieldError       = "error"
	ResponseFieldSuccess     = "success"
	ResponseFieldData        = "data"
	ResponseFieldTotalCount  = "totalCount"
	ResponseFieldTotalNoPage = "totalNoPage"
	ResponseFieldTotalPage   = "totalPage"
	ResponseFieldPage        = "page"
	ResponseFieldLimit       = "limit"
)

// BuildSuccessResponse builds the success envelope. data is omitted when nil.
func BuildSuccessResponse(message string, data any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
		ResponseFieldError:   false,
		ResponseFieldSuccess: true,
	}

	if data != nil {
		response[ResponseFieldData] = data
	}

	return response
}

// BuildErrorResponse builds the failure envelope.
func BuildErrorResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
		ResponseFieldError:   true,
		ResponseFieldSuccess: false,
	}
}

// BuildListResponse builds a paginated envelope with totalCount and totalNoPage.
func BuildListResponse(message string, data any, totalCount int64, totalNoPage int) map[string]any {
	response := BuildSuccessResponse(message, data)
	response[ResponseFieldTotalCount] = totalCount
	response[ResponseFieldTotalNoPage] = totalNoPage
	return response
}

// BuildPageResponse builds a paginated envelope that echoes page and limit.
// totalPage is included when positive.
func BuildPageResponse(message string, data any, totalCount int64, totalPage, page, limit int) map[string]any {
	response := BuildSuccessResponse(message, data)
	response[ResponseFieldTotalCount] = totalCount
	response[ResponseFieldPage] = page
	response[ResponseFieldLimit] = limit
	if totalPage > 0 {
		response[ResponseFieldTotalPage] = totalPage
	}
	return response
}
