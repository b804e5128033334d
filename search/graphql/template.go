package graphql

// DefaultTemplate lists pages under a root path ordered by date.
const DefaultTemplate = `query ContentListing(
  $language: String!
  $rootPath: String!
  $pageSize: Int
  $after: String
) {
  search(
    where: {
      AND: [
        { name: "_path", value: $rootPath, operator: CONTAINS }
        { name: "_language", value: $language }
        { name: "_hasLayout", value: "true" }
        __DYNAMIC_FILTERS__
      ]
    }
    first: $pageSize
    after: $after
    orderBy: { name: "date", direction: DESC }
  ) {
    total
    pageInfo {
      endCursor
      hasNext
    }
    results {
      id
      name
      url {
        path
      }
      title: field(name: "title") {
        value
      }
      summary: field(name: "summary") {
        value
      }
      contentType: field(name: "contentType") {
        value
      }
      date: field(name: "date") {
        value
      }
    }
  }
}
`
