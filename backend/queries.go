package backend

const portfoliosQuery = `
query GetPortfolios {
  portfolios {
    id
    name
    description
    totalValue
    totalProfitLoss
    totalProfitLossPercentage
    totalRealizedProfitLoss
    totalCostBasis
    createdAt
    updatedAt
    assets {
      id
      cryptoId
      symbol
      name
      amount
      averageBuyPrice
      currentPrice
      totalValue
      profitLoss
      profitLossPercentage
      transactions {
        id
        transactionType
        amount
        pricePerUnit
        totalValue
        realizedProfitLoss
        timestamp
        notes
      }
    }
  }
}`

const portfolioTransactionsQuery = `
query GetPortfolioTransactions($portfolioId: String!) {
  portfolioTransactions(portfolioId: $portfolioId) {
    id
    transactionType
    amount
    pricePerUnit
    totalValue
    realizedProfitLoss
    timestamp
    notes
  }
}`

const addTransactionMutation = `
mutation AddTransaction($portfolioId: String!, $assetId: String!, $transactionType: String!, $amount: Float!, $pricePerUnit: Float!, $notes: String) {
  addTransaction(portfolioId: $portfolioId, assetId: $assetId, transactionType: $transactionType, amount: $amount, pricePerUnit: $pricePerUnit, notes: $notes) {
    id
    transactionType
    amount
    pricePerUnit
    totalValue
    realizedProfitLoss
    timestamp
    notes
  }
}`

const portfolioFields = `
    id
    name
    description
    totalValue
    totalProfitLoss
    totalProfitLossPercentage
    createdAt
    updatedAt`

const createPortfolioMutation = `
mutation CreatePortfolio($input: CreatePortfolioInput!) {
  createPortfolio(input: $input) {` + portfolioFields + `
  }
}`

const updatePortfolioMutation = `
mutation UpdatePortfolio($id: String!, $name: String, $description: String) {
  updatePortfolio(id: $id, name: $name, description: $description) {` + portfolioFields + `
  }
}`

const deletePortfolioMutation = `
mutation DeletePortfolio($id: String!) {
  deletePortfolio(id: $id)
}`

const addAssetMutation = `
mutation AddAssetToPortfolio($portfolioId: String!, $cryptoId: String!, $amount: Float!, $purchasePrice: Float!) {
  addAssetToPortfolio(portfolioId: $portfolioId, cryptoId: $cryptoId, amount: $amount, purchasePrice: $purchasePrice) {
    id
    symbol
    name
    amount
    purchasePrice
    currentPrice
    totalValue
    profitLoss
    profitLossPercentage
  }
}`

const removeAssetMutation = `
mutation RemoveAssetFromPortfolio($portfolioId: String!, $assetId: String!) {
  removeAssetFromPortfolio(portfolioId: $portfolioId, assetId: $assetId)
}`

const cryptocurrenciesQuery = `
query GetCryptocurrencies($limit: Int) {
  cryptocurrencies(limit: $limit) {
    id
    symbol
    name
    currentPrice
    marketCap
    marketCapRank
    priceChange24h
    priceChangePercentage24h
    high24h
    low24h
    totalVolume
    lastUpdated
  }
}`

const cryptocurrencyQuery = `
query GetCryptocurrency($id: String!) {
  cryptocurrency(id: $id) {
    id
    symbol
    name
    currentPrice
    marketCap
    marketCapRank
    priceChange24h
    priceChangePercentage24h
    high24h
    low24h
    ath
    atl
    totalVolume
    circulatingSupply
    maxSupply
    lastUpdated
  }
}`

const priceHistoryQuery = `
query GetPriceHistory($cryptoId: String!, $days: Int) {
  priceHistory(cryptoId: $cryptoId, days: $days) {
    timestamp
    price
  }
}`
