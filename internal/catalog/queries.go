package catalog

const collectionsQuery = `
query getCollections($first: Int!) {
  collections(first: $first) {
    edges {
      node {
        id
        handle
        title
        description
      }
    }
  }
}`

const collectionFirstProductMediaQuery = `
query getCollectionFirstProductMedia($id: ID!, $mediaCount: Int!) {
  collection(id: $id) {
    products(first: 1) {
      edges {
        node {
          id
          title
          handle
          media(first: $mediaCount) {
            edges {
              node {
                ... on Video {
                  id
                  alt
                  mediaContentType
                  preview {
                    image {
                      url
                    }
                  }
                  sources {
                    url
                    mimeType
                    format
                    height
                    width
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

const productMediaByHandleQuery = `
query getProductMediaByHandle($handle: String!, $mediaCount: Int!) {
  productByHandle(handle: $handle) {
    id
    title
    handle
    media(first: $mediaCount) {
      edges {
        node {
          ... on Video {
            id
            alt
            mediaContentType
            preview {
              image {
                url
              }
            }
            sources {
              url
              mimeType
              format
              height
              width
            }
          }
        }
      }
    }
  }
}`
