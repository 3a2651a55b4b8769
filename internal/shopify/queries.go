package shopify

// All queries take their inputs as GraphQL variables. Search terms in
// particular must never be spliced into the query text.

const productFields = `
    id
    title
    handle
    description
    descriptionHtml
    availableForSale
    vendor
    productType
    tags
    priceRange {
      minVariantPrice {
        amount
        currencyCode
      }
    }
    compareAtPriceRange {
      minVariantPrice {
        amount
        currencyCode
      }
    }
    featuredImage {
      url
      altText
    }
    images(first: 10) {
      edges {
        node {
          url
          altText
        }
      }
    }
    variants(first: 50) {
      edges {
        node {
          id
          title
          availableForSale
          sku
          price {
            amount
            currencyCode
          }
          compareAtPrice {
            amount
            currencyCode
          }
          selectedOptions {
            name
            value
          }
        }
      }
    }
`

// ProductByIDQuery fetches a single product by its GID
const ProductByIDQuery = `
query getProductByID($id: ID!) {
  product(id: $id) {` + productFields + `
  }
}
`

// ProductByHandleQuery fetches a single product by its handle
const ProductByHandleQuery = `
query getProductByHandle($handle: String!) {
  product(handle: $handle) {` + productFields + `
  }
}
`

// ProductsQuery lists products, optionally filtered by a search query
const ProductsQuery = `
query getProducts($first: Int!, $query: String) {
  products(first: $first, query: $query) {
    edges {
      node {` + productFields + `
      }
    }
  }
}
`
